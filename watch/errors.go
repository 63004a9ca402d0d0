package watch

import "errors"

var (
	// ErrTimeout indicates a watcher execution exceeded its time budget.
	ErrTimeout = errors.New("watch: execution timed out")
)
