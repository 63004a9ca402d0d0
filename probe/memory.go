package probe

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jonwraymond/warden/watch"
)

// MemoryConfig configures the process memory probe.
type MemoryConfig struct {
	// CriticalThreshold is the fraction of MaxAlloc at which the check
	// fails. Value should be between 0 and 1. Default: 0.95 (95%).
	CriticalThreshold float64

	// MaxAlloc is the allocation budget in bytes the thresholds apply to.
	// Zero means the memory obtained from the OS so far (MemStats.Sys).
	MaxAlloc uint64
}

// MemoryWatcher checks the process's heap usage against a threshold.
type MemoryWatcher struct {
	config MemoryConfig
}

// NewMemoryWatcher creates a new memory probe.
func NewMemoryWatcher(config MemoryConfig) *MemoryWatcher {
	if config.CriticalThreshold <= 0 || config.CriticalThreshold >= 1 {
		config.CriticalThreshold = 0.95
	}
	return &MemoryWatcher{config: config}
}

// Name returns the name of this probe.
func (w *MemoryWatcher) Name() string {
	return "memory"
}

// Execute reads the runtime memory statistics and evaluates the threshold.
func (w *MemoryWatcher) Execute(ctx context.Context) (watch.Outcome, error) {
	select {
	case <-ctx.Done():
		return watch.Outcome{}, ctx.Err()
	default:
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	maxAlloc := w.config.MaxAlloc
	if maxAlloc == 0 {
		maxAlloc = stats.Sys
	}

	usage := float64(stats.Alloc) / float64(maxAlloc)
	details := map[string]any{
		"alloc_bytes":   stats.Alloc,
		"max_alloc":     maxAlloc,
		"usage_percent": usage * 100,
		"heap_objects":  stats.HeapObjects,
		"num_gc":        stats.NumGC,
		"goroutines":    runtime.NumGoroutine(),
	}

	if usage >= w.config.CriticalThreshold {
		return watch.Invalid(fmt.Sprintf("memory usage critical: %.1f%%", usage*100)).WithDetails(details), nil
	}
	return watch.Valid(fmt.Sprintf("memory usage normal: %.1f%%", usage*100)).WithDetails(details), nil
}
