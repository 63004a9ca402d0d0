// Package run implements the iteration scheduler that repeatedly executes a
// configured set of watchers and drives their lifecycle hooks.
//
// A Scheduler owns a single run: starting it enters a loop in which every
// configured watcher executes concurrently, outcomes are aggregated into an
// Iteration record, and hooks fire at each lifecycle event. Iterations never
// overlap; the loop waits for every watcher to finish before moving on.
//
// # Lifecycle Events
//
// Run-scope hooks fire on run start, run stop, iteration start, iteration
// completion, and fatal run error. Watcher-scope hooks fire per watcher per
// iteration: Start, then Success or Failure (check ran) or Error (check could
// not run), then always Completed. For every event the watcher's own hooks
// fire before the global watcher hooks, and each chain's synchronous
// callbacks fire before its asynchronous ones.
//
// # Failure Isolation
//
// A watcher whose execution fails (by returning an error, by panicking, or
// by one of its hooks failing) is reported through its OnError hooks and
// contributes no Result to the iteration; the run continues. Only failures in
// the hook pipeline that reports errors (the Error and Completed chains) or
// in run-scope hooks are fatal: they stop the run and fire the run-level
// Error chain.
//
// # Basic Usage
//
//	scheduler, err := run.New(run.Config{
//	    Iterations: 10,
//	    Delay:      30 * time.Second,
//	    Watchers: []run.WatcherEntry{
//	        {Watcher: pingWatcher},
//	        {Watcher: diskWatcher},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	go scheduler.Start(ctx)
//	...
//	scheduler.Stop(ctx)
//
// Start blocks until the run has fully stopped, so hosts typically launch it
// in a goroutine. Stop takes effect at the next iteration boundary: an
// iteration already in flight runs to completion.
package run
