package run

import (
	"time"

	"github.com/jonwraymond/warden/watch"
)

// Schedule computes the next activation time for a run. It matches the
// Schedule interface of github.com/robfig/cron/v3, so parsed cron schedules
// can be assigned directly.
type Schedule interface {
	// Next returns the next activation time strictly after t.
	Next(t time.Time) time.Time
}

// WatcherEntry pairs a watcher with the hook set scoped to it alone.
type WatcherEntry struct {
	// Watcher performs the check. Required.
	Watcher watch.Watcher

	// Hooks fire for this watcher only, before the global watcher hooks.
	Hooks WatcherHooks
}

// Config describes a run. It is treated as immutable once the run starts;
// register all watchers and hooks before calling New.
type Config struct {
	// Iterations bounds the run to this many iterations.
	// Zero means unbounded. Must not be negative.
	Iterations int64

	// Delay is the fixed pause between iterations. May be zero.
	// Ignored when Schedule is set.
	Delay time.Duration

	// Schedule, when set, computes the pause between iterations
	// dynamically: after each iteration the run sleeps until
	// Schedule.Next(now).
	Schedule Schedule

	// Watchers is the ordered set of checks executed each iteration.
	// At least one entry is required.
	Watchers []WatcherEntry

	// WatcherHooks fire for every watcher, after that watcher's own hooks.
	WatcherHooks WatcherHooks

	// Hooks are the run-scope lifecycle hooks.
	Hooks Hooks
}

func (c Config) validate() error {
	if len(c.Watchers) == 0 {
		return ErrNoWatchers
	}
	if c.Iterations < 0 {
		return ErrInvalidIterations
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	for _, entry := range c.Watchers {
		if entry.Watcher == nil {
			return ErrNilWatcher
		}
		if entry.Watcher.Name() == "" {
			return ErrUnnamedWatcher
		}
	}
	return nil
}
