package run

import (
	"context"
	"testing"

	"github.com/jonwraymond/warden/watch"
)

// BenchmarkScheduler_Iteration measures one full bounded run with a single
// watcher and no hooks.
func BenchmarkScheduler_Iteration(b *testing.B) {
	cfg := Config{
		Iterations: 1,
		Watchers:   []WatcherEntry{{Watcher: passingWatcher("bench")}},
	}
	s, err := New(cfg)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Start(ctx)
	}
}

// BenchmarkScheduler_Iteration_FanOut measures the concurrent fan-out with
// many watchers per iteration.
func BenchmarkScheduler_Iteration_FanOut(b *testing.B) {
	entries := make([]WatcherEntry, 16)
	for i := range entries {
		entries[i] = WatcherEntry{Watcher: passingWatcher("bench")}
	}
	cfg := Config{
		Iterations: 1,
		Watchers:   entries,
	}
	s, err := New(cfg)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Start(ctx)
	}
}

// BenchmarkScheduler_Iteration_Hooks measures the hook-dispatch overhead per
// watcher lifecycle.
func BenchmarkScheduler_Iteration_Hooks(b *testing.B) {
	entry := WatcherEntry{Watcher: passingWatcher("bench")}
	entry.Hooks.Start.On(func(CheckInfo) error { return nil })
	entry.Hooks.Success.On(func(watch.Result) error { return nil })
	entry.Hooks.Completed.On(func(Completion) error { return nil })

	cfg := Config{
		Iterations: 1,
		Watchers:   []WatcherEntry{entry},
	}
	cfg.WatcherHooks.Success.On(func(watch.Result) error { return nil })
	cfg.WatcherHooks.Completed.On(func(Completion) error { return nil })

	s, err := New(cfg)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Start(ctx)
	}
}
