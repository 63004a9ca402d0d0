package sink

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/warden/run"
)

const instrumentationName = "github.com/jonwraymond/warden/sink"

// OTel records one span per watcher execution and OpenTelemetry metrics for
// completions. Exporter wiring stays with the host: pass whatever providers
// the process already uses.
type OTel struct {
	tracer   trace.Tracer
	total    metric.Int64Counter
	errs     metric.Int64Counter
	duration metric.Float64Histogram

	mu    sync.Mutex
	spans map[spanKey]trace.Span
}

type spanKey struct {
	watcher string
	ordinal int64
}

// NewOTel creates a tracing and metrics sink from the given providers.
func NewOTel(tp trace.TracerProvider, mp metric.MeterProvider) (*OTel, error) {
	meter := mp.Meter(instrumentationName)

	total, err := meter.Int64Counter(
		"warden.checks.total",
		metric.WithDescription("Completed watcher executions"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter(
		"warden.checks.errors",
		metric.WithDescription("Watcher executions that failed before producing a result"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"warden.checks.duration_ms",
		metric.WithDescription("Watcher execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &OTel{
		tracer:   tp.Tracer(instrumentationName),
		total:    total,
		errs:     errs,
		duration: duration,
		spans:    make(map[spanKey]trace.Span),
	}, nil
}

// AttachWatcher registers the span and metric callbacks. A span opens on the
// Start event and closes on the matching Completed event; at most one
// execution per watcher is in flight per iteration, so the (watcher,
// ordinal) pair identifies the span.
func (s *OTel) AttachWatcher(h *run.WatcherHooks) {
	h.Start.OnAsync(func(ctx context.Context, info run.CheckInfo) error {
		_, span := s.tracer.Start(ctx, "warden.check",
			trace.WithAttributes(
				attribute.String("warden.watcher", info.Watcher),
				attribute.Int64("warden.ordinal", info.Ordinal),
			))
		s.mu.Lock()
		s.spans[spanKey{info.Watcher, info.Ordinal}] = span
		s.mu.Unlock()
		return nil
	})
	h.Completed.OnAsync(func(ctx context.Context, c run.Completion) error {
		s.mu.Lock()
		key := spanKey{c.Watcher, c.Ordinal}
		span, ok := s.spans[key]
		delete(s.spans, key)
		s.mu.Unlock()

		attrs := metric.WithAttributes(attribute.String("warden.watcher", c.Watcher))
		s.total.Add(ctx, 1, attrs)
		if c.HasResult() {
			s.duration.Record(ctx, float64(c.Result.Duration().Milliseconds()), attrs)
		}
		if c.Err != nil {
			s.errs.Add(ctx, 1, attrs)
		}

		if !ok {
			return nil
		}
		if c.Err != nil {
			span.RecordError(c.Err)
			span.SetStatus(codes.Error, c.Err.Error())
		} else if c.HasResult() {
			span.SetAttributes(attribute.Bool("warden.valid", c.Result.Outcome.Valid))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		return nil
	})
}
