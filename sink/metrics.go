package sink

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

// Metrics exposes Prometheus metrics for every watcher execution and
// iteration.
type Metrics struct {
	checks     *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	iterations prometheus.Counter
}

// NewMetrics creates a metrics sink and registers its collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_checks_total",
			Help: "Completed watcher executions by validity.",
		}, []string{"watcher", "valid"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "warden_check_errors_total",
			Help: "Watcher executions that failed before producing a result.",
		}, []string{"watcher"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "warden_check_duration_seconds",
			Help:    "Watcher execution duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"watcher"}),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "warden_iterations_total",
			Help: "Completed iterations.",
		}),
	}

	for _, c := range []prometheus.Collector{m.checks, m.errors, m.duration, m.iterations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AttachRun registers run-scope metric callbacks.
func (m *Metrics) AttachRun(h *run.Hooks) {
	h.IterationCompleted.On(func(*run.Iteration) error {
		m.iterations.Inc()
		return nil
	})
}

// AttachWatcher registers watcher-scope metric callbacks.
func (m *Metrics) AttachWatcher(h *run.WatcherHooks) {
	record := func(r watch.Result) error {
		m.checks.WithLabelValues(r.Outcome.Watcher, strconv.FormatBool(r.Outcome.Valid)).Inc()
		m.duration.WithLabelValues(r.Outcome.Watcher).Observe(r.Duration().Seconds())
		return nil
	}
	h.Success.On(record)
	h.Failure.On(record)
	h.Error.On(func(err error) error {
		name := "unknown"
		var werr *run.WatcherError
		if errors.As(err, &werr) {
			name = werr.Watcher
		}
		m.errors.WithLabelValues(name).Inc()
		return nil
	})
}
