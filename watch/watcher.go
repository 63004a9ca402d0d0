package watch

import "context"

// Outcome is what a watcher reports after performing its check.
type Outcome struct {
	// Valid reports whether the check passed.
	Valid bool

	// Watcher is the name of the watcher that produced this outcome.
	// The runner fills it in when the watcher leaves it empty.
	Watcher string

	// Description provides human-readable context about the outcome.
	Description string

	// Details contains arbitrary diagnostic metadata about the check.
	Details map[string]any
}

// Valid creates a passing outcome.
func Valid(description string) Outcome {
	return Outcome{Valid: true, Description: description}
}

// Invalid creates a failing outcome.
func Invalid(description string) Outcome {
	return Outcome{Valid: false, Description: description}
}

// WithDetails adds diagnostic details to an outcome.
func (o Outcome) WithDetails(details map[string]any) Outcome {
	o.Details = details
	return o
}

// Watcher is the interface for health checks driven by the runner.
type Watcher interface {
	// Name returns the name of this watcher. It must be stable for the
	// lifetime of a run.
	Name() string

	// Execute performs the check and returns its outcome. A non-nil error
	// means the check itself could not run; an Outcome with Valid=false
	// means the check ran and found the resource unwell.
	Execute(ctx context.Context) (Outcome, error)
}

// WatcherFunc is an adapter to allow ordinary functions to be used as
// Watchers.
type WatcherFunc struct {
	name string
	fn   func(context.Context) (Outcome, error)
}

// NewWatcherFunc creates a new WatcherFunc.
func NewWatcherFunc(name string, fn func(context.Context) (Outcome, error)) *WatcherFunc {
	return &WatcherFunc{name: name, fn: fn}
}

// Name returns the name of this watcher.
func (f *WatcherFunc) Name() string {
	return f.name
}

// Execute performs the check.
func (f *WatcherFunc) Execute(ctx context.Context) (Outcome, error) {
	return f.fn(ctx)
}
