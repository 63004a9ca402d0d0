// Package watch defines the watcher capability consumed by the runner.
//
// A Watcher performs one health or status check and reports an Outcome: a
// validity flag plus an optional human-readable description and diagnostic
// details. The runner executes watchers repeatedly and feeds their outcomes
// through lifecycle hooks; this package only defines the contract and the
// immutable Result record that pairs an Outcome with execution timestamps.
//
// # Defining a Watcher
//
//	pingDB := watch.NewWatcherFunc("database", func(ctx context.Context) (watch.Outcome, error) {
//	    if err := db.PingContext(ctx); err != nil {
//	        return watch.Invalid(err.Error()), nil
//	    }
//	    return watch.Valid("database reachable"), nil
//	})
//
// An invalid Outcome means the check ran and the checked resource is unwell.
// A non-nil error from Execute means the check itself could not run; the
// runner reports it through OnError hooks and records no Result.
//
// # Timeouts
//
// WithTimeout bounds a watcher's execution:
//
//	slow := watch.WithTimeout(pingDB, 5*time.Second)
package watch
