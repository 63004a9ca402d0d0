package run

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWatchers indicates a configuration with no watchers.
	ErrNoWatchers = errors.New("run: no watchers configured")

	// ErrNilWatcher indicates a watcher entry with a nil watcher.
	ErrNilWatcher = errors.New("run: nil watcher in configuration")

	// ErrUnnamedWatcher indicates a watcher whose Name() is empty.
	ErrUnnamedWatcher = errors.New("run: watcher has no name")

	// ErrInvalidIterations indicates a negative iteration bound.
	ErrInvalidIterations = errors.New("run: iteration bound must not be negative")

	// ErrInvalidDelay indicates a negative inter-iteration delay.
	ErrInvalidDelay = errors.New("run: delay must not be negative")
)

// WatcherError wraps a failure of one watcher's execution with the watcher's
// identity. It is the payload of watcher-scope Error hooks.
type WatcherError struct {
	// Watcher is the name of the watcher whose execution failed.
	Watcher string

	// Err is the underlying failure.
	Err error
}

// Error returns the failure message prefixed with the watcher name.
func (e *WatcherError) Error() string {
	return fmt.Sprintf("watcher %q: %v", e.Watcher, e.Err)
}

// Unwrap returns the underlying failure.
func (e *WatcherError) Unwrap() error {
	return e.Err
}
