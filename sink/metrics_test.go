package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

func TestMetrics_CountsAfterRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	cfg := run.Config{
		Iterations: 3,
		Watchers: []run.WatcherEntry{
			{Watcher: watch.NewWatcherFunc("ping", func(ctx context.Context) (watch.Outcome, error) {
				return watch.Valid("ok"), nil
			})},
			{Watcher: watch.NewWatcherFunc("disk", func(ctx context.Context) (watch.Outcome, error) {
				return watch.Invalid("disk full"), nil
			})},
			{Watcher: watch.NewWatcherFunc("ssh", func(ctx context.Context) (watch.Outcome, error) {
				return watch.Outcome{}, errors.New("connection refused")
			})},
		},
	}
	m.AttachRun(&cfg.Hooks)
	m.AttachWatcher(&cfg.WatcherHooks)

	s, err := run.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := testutil.ToFloat64(m.iterations); got != 3 {
		t.Errorf("warden_iterations_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.checks.WithLabelValues("ping", "true")); got != 3 {
		t.Errorf(`warden_checks_total{watcher="ping",valid="true"} = %v, want 3`, got)
	}
	if got := testutil.ToFloat64(m.checks.WithLabelValues("disk", "false")); got != 3 {
		t.Errorf(`warden_checks_total{watcher="disk",valid="false"} = %v, want 3`, got)
	}
	if got := testutil.ToFloat64(m.errors.WithLabelValues("ssh")); got != 3 {
		t.Errorf(`warden_check_errors_total{watcher="ssh"} = %v, want 3`, got)
	}
	if got := testutil.CollectAndCount(m.duration, "warden_check_duration_seconds"); got != 2 {
		t.Errorf("warden_check_duration_seconds series = %d, want 2", got)
	}
}

func TestMetrics_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg); err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	if _, err := NewMetrics(reg); err == nil {
		t.Fatal("NewMetrics() on the same registry should fail")
	}
}

func TestMetrics_UnattributedError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	var h run.WatcherHooks
	m.AttachWatcher(&h)
	if err := h.Error.Fire(context.Background(), errors.New("bare failure")); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}

	if got := testutil.ToFloat64(m.errors.WithLabelValues("unknown")); got != 1 {
		t.Errorf(`warden_check_errors_total{watcher="unknown"} = %v, want 1`, got)
	}
}
