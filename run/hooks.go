package run

import (
	"context"
	"time"

	"github.com/jonwraymond/warden/hook"
	"github.com/jonwraymond/warden/watch"
)

// CheckInfo identifies a watcher execution that is about to begin. It is the
// payload of watcher-scope Start hooks.
type CheckInfo struct {
	// Watcher is the name of the watcher being executed.
	Watcher string

	// Ordinal is the 1-based iteration this execution belongs to.
	Ordinal int64
}

// Completion is the payload of watcher-scope Completed hooks. It fires
// exactly once per watcher per iteration, on both the success and the error
// path.
//
// Result is nil when the execution failed before producing one; callbacks
// that need to branch should call HasResult rather than assume a value. When
// a Success or Failure hook failed after the result was produced, both Result
// and Err are set.
type Completion struct {
	// Watcher is the name of the watcher that completed.
	Watcher string

	// Ordinal is the 1-based iteration this completion belongs to.
	Ordinal int64

	// Result is the produced result, or nil when the execution failed
	// before producing one.
	Result *watch.Result

	// Err is the failure reported through the Error hooks, or nil on the
	// success path.
	Err error
}

// HasResult reports whether the execution produced a Result.
func (c Completion) HasResult() bool {
	return c.Result != nil
}

// WatcherHooks is the set of lifecycle hook chains scoped to one watcher, or
// to all watchers when used as Config.WatcherHooks. The zero value has every
// chain empty.
type WatcherHooks struct {
	// Start fires before each execution of the watcher.
	Start hook.Chain[CheckInfo]

	// Success fires when the watcher ran and reported a valid outcome.
	Success hook.Chain[watch.Result]

	// Failure fires when the watcher ran and reported an invalid outcome.
	Failure hook.Chain[watch.Result]

	// Error fires when the execution itself failed. The payload is always
	// a *WatcherError identifying the watcher.
	Error hook.Chain[error]

	// Completed fires once per execution, after Success, Failure or Error.
	Completed hook.Chain[Completion]
}

// RunInfo is the payload of run-scope Start and Stop hooks.
type RunInfo struct {
	// At is when the event occurred, in UTC.
	At time.Time
}

// IterationInfo announces an iteration that is about to execute. It is the
// payload of run-scope IterationStart hooks.
type IterationInfo struct {
	// Ordinal is the 1-based number of the starting iteration.
	Ordinal int64

	// StartedAt is when the iteration began, in UTC.
	StartedAt time.Time
}

// Hooks is the set of run-scope lifecycle hook chains. The zero value has
// every chain empty.
type Hooks struct {
	// Start fires when the run starts, before the first iteration.
	Start hook.Chain[RunInfo]

	// Stop fires when Stop is called.
	Stop hook.Chain[RunInfo]

	// IterationStart fires before each iteration's watchers launch.
	IterationStart hook.Chain[IterationInfo]

	// IterationCompleted fires after each iteration's watchers have all
	// finished.
	IterationCompleted hook.Chain[*Iteration]

	// Error fires when the run terminates with an unrecoverable error.
	Error hook.Chain[error]
}

// fireEach fires chains in order, stopping at the first error. It implements
// the local-before-global ordering: callers pass the watcher's own chain
// first and the global chain second.
func fireEach[T any](ctx context.Context, v T, chains ...*hook.Chain[T]) error {
	for _, c := range chains {
		if err := c.Fire(ctx, v); err != nil {
			return err
		}
	}
	return nil
}
