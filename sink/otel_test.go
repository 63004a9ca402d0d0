package sink

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

func newRecordedOTel(t *testing.T) (*OTel, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	s, err := NewOTel(tp, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewOTel() error = %v", err)
	}
	return s, rec
}

func TestOTel_SpanPerExecution(t *testing.T) {
	s, rec := newRecordedOTel(t)

	cfg := run.Config{
		Iterations: 2,
		Watchers: []run.WatcherEntry{
			{Watcher: watch.NewWatcherFunc("ping", func(ctx context.Context) (watch.Outcome, error) {
				return watch.Valid("ok"), nil
			})},
		},
	}
	s.AttachWatcher(&cfg.WatcherHooks)

	sched, err := run.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	for _, span := range spans {
		if span.Name() != "warden.check" {
			t.Errorf("span name = %q, want %q", span.Name(), "warden.check")
		}
		if span.Status().Code != codes.Ok {
			t.Errorf("span status = %v, want Ok", span.Status().Code)
		}
	}
}

func TestOTel_ErrorSpan(t *testing.T) {
	s, rec := newRecordedOTel(t)

	cfg := run.Config{
		Iterations: 1,
		Watchers: []run.WatcherEntry{
			{Watcher: watch.NewWatcherFunc("ssh", func(ctx context.Context) (watch.Outcome, error) {
				return watch.Outcome{}, errors.New("connection refused")
			})},
		},
	}
	s.AttachWatcher(&cfg.WatcherHooks)

	sched, err := run.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", span.Status().Code)
	}
	if len(span.Events()) == 0 {
		t.Error("span should record the error event")
	}
	if len(s.spans) != 0 {
		t.Errorf("span map holds %d entries after run, want 0", len(s.spans))
	}
}

func TestOTel_CompletedWithoutStart(t *testing.T) {
	s, _ := newRecordedOTel(t)

	var h run.WatcherHooks
	s.AttachWatcher(&h)

	c := run.Completion{Watcher: "ghost", Ordinal: 7}
	if err := h.Completed.Fire(context.Background(), c); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
}
