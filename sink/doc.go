// Package sink provides ready-made hook implementations for the runner:
// logging, metrics, tracing, persistence, alerting, and an HTTP status
// surface.
//
// Each sink exposes AttachRun and/or AttachWatcher methods that register its
// callbacks on a hook set. Attach sinks to the configuration before handing
// it to run.New:
//
//	logs := sink.NewLog(logger)
//	cfg := run.Config{...}
//	logs.AttachRun(&cfg.Hooks)
//	logs.AttachWatcher(&cfg.WatcherHooks)
//
// Sinks attached to Config.WatcherHooks observe every watcher; attach to an
// individual WatcherEntry's hooks to observe just one.
//
// # Available Sinks
//
//   - Log: structured logging of every lifecycle event via zerolog.
//   - Metrics: Prometheus counters and histograms per watcher.
//   - OTel: one OpenTelemetry span per watcher execution plus OTel metrics.
//   - Store: SQLite persistence of iteration records.
//   - Webhook: JSON alert posts on failures, JWT-signed and rate-limited.
//   - Email: SMTP alerts on failures.
//   - State: an http.Handler serving the most recent iteration as JSON.
package sink
