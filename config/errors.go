package config

import "errors"

var (
	// ErrNoWatchers indicates a file that declares no watchers.
	ErrNoWatchers = errors.New("config: no watchers declared")

	// ErrUnnamedWatcher indicates a watcher entry without a name.
	ErrUnnamedWatcher = errors.New("config: watcher has no name")

	// ErrDuplicateWatcher indicates two watcher entries sharing a name.
	ErrDuplicateWatcher = errors.New("config: duplicate watcher name")

	// ErrUnknownProbe indicates a watcher entry with an unsupported type.
	ErrUnknownProbe = errors.New("config: unknown probe type")
)
