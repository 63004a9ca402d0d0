package watch

import (
	"context"
	"time"
)

// timeoutWatcher bounds the execution time of a wrapped watcher.
type timeoutWatcher struct {
	inner   Watcher
	timeout time.Duration
}

// WithTimeout wraps a watcher so that each execution is bounded by timeout.
// An execution that does not finish in time fails with ErrTimeout; the
// wrapped watcher keeps running in the background until it observes the
// cancelled context.
func WithTimeout(w Watcher, timeout time.Duration) Watcher {
	if timeout <= 0 {
		return w
	}
	return &timeoutWatcher{inner: w, timeout: timeout}
}

// Name returns the name of the wrapped watcher.
func (t *timeoutWatcher) Name() string {
	return t.inner.Name()
}

// Execute runs the wrapped watcher with a deadline.
func (t *timeoutWatcher) Execute(ctx context.Context) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type reply struct {
		outcome Outcome
		err     error
	}
	done := make(chan reply, 1)

	go func() {
		outcome, err := t.inner.Execute(ctx)
		done <- reply{outcome: outcome, err: err}
	}()

	select {
	case r := <-done:
		return r.outcome, r.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return Outcome{}, ErrTimeout
		}
		return Outcome{}, ctx.Err()
	}
}
