package run

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/warden/watch"
)

// Iteration is the immutable record of one pass over all configured
// watchers.
type Iteration struct {
	// Ordinal is the 1-based number of this iteration, monotonically
	// increasing across the run.
	Ordinal int64

	// Results holds one entry per watcher whose execution produced an
	// outcome, in watcher configuration order. Watchers whose execution
	// failed contribute no entry.
	Results []watch.Result

	// StartedAt is when the iteration began, in UTC.
	StartedAt time.Time

	// CompletedAt is when the last watcher finished, in UTC.
	CompletedAt time.Time
}

// executeIteration runs every configured watcher concurrently, waits for all
// of them, and aggregates the produced results. Watcher failures are
// reported through hooks inside each task and never surface here; a non-nil
// error means the hook pipeline itself failed and the run must stop.
func (s *Scheduler) executeIteration(ctx context.Context, ordinal int64) (*Iteration, error) {
	startedAt := time.Now().UTC()
	entries := s.cfg.Watchers

	// One slot per watcher, written only by that watcher's task and merged
	// after the join. Keeps the aggregation race-free without a lock.
	slots := make([]*watch.Result, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		g.Go(func() error {
			return s.runWatcher(ctx, ordinal, entry, &slots[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]watch.Result, 0, len(entries))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return &Iteration{
		Ordinal:     ordinal,
		Results:     results,
		StartedAt:   startedAt,
		CompletedAt: time.Now().UTC(),
	}, nil
}

// runWatcher drives one watcher through its full lifecycle: Start hooks,
// execution, Success/Failure or Error hooks, and always Completed hooks.
// Execution failures are converted to reported events here; only failures of
// the Error or Completed chains themselves escape.
func (s *Scheduler) runWatcher(ctx context.Context, ordinal int64, entry WatcherEntry, slot **watch.Result) error {
	name := entry.Watcher.Name()
	local := &entry.Hooks
	global := &s.cfg.WatcherHooks

	result, execErr := s.executeWatcher(ctx, ordinal, name, entry.Watcher, local, slot)

	completion := Completion{Watcher: name, Ordinal: ordinal, Result: result}
	if execErr != nil {
		werr := &WatcherError{Watcher: name, Err: execErr}
		completion.Err = werr
		if err := fireEach(ctx, error(werr), &local.Error, &global.Error); err != nil {
			return fmt.Errorf("run: watcher %q error hooks: %w", name, err)
		}
	}
	if err := fireEach(ctx, completion, &local.Completed, &global.Completed); err != nil {
		return fmt.Errorf("run: watcher %q completed hooks: %w", name, err)
	}
	return nil
}

// executeWatcher is the per-watcher failure boundary around Start hooks,
// the execution itself, and the Success/Failure hooks. Panics anywhere
// inside are recovered into errors so one misbehaving watcher cannot take
// down the run.
func (s *Scheduler) executeWatcher(ctx context.Context, ordinal int64, name string, w watch.Watcher, local *WatcherHooks, slot **watch.Result) (result *watch.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	global := &s.cfg.WatcherHooks

	info := CheckInfo{Watcher: name, Ordinal: ordinal}
	if err := fireEach(ctx, info, &local.Start, &global.Start); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	outcome, execErr := w.Execute(ctx)
	completedAt := time.Now().UTC()
	if execErr != nil {
		return nil, execErr
	}

	if outcome.Watcher == "" {
		outcome.Watcher = name
	}
	res := watch.NewResult(outcome, startedAt, completedAt)
	*slot = &res

	if outcome.Valid {
		if err := fireEach(ctx, res, &local.Success, &global.Success); err != nil {
			return &res, err
		}
	} else {
		if err := fireEach(ctx, res, &local.Failure, &global.Failure); err != nil {
			return &res, err
		}
	}
	return &res, nil
}
