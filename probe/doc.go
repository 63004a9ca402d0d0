// Package probe provides ready-made watchers for common health checks.
//
// Every probe implements watch.Watcher and can be handed directly to the
// runner. Probes distinguish two failure modes: a target that was reached
// and found unwell reports an invalid Outcome (Failure hooks fire), while a
// probe that could not perform its check at all returns an error (Error
// hooks fire).
//
// # Available Probes
//
//   - HTTP: request a URL and assert on status code, body content, or a
//     JSONPath expression.
//   - TCP: connect to a host:port.
//   - Ping: ICMP echo with a packet-loss bound.
//   - DNS: resolve a record and assert on the answers.
//   - Memory: process heap usage against configured thresholds.
//
// # Basic Usage
//
//	web := probe.NewHTTPWatcher("api", probe.HTTPConfig{
//	    URL:          "https://api.example.com/healthz",
//	    ExpectStatus: 200,
//	})
//
//	scheduler, err := run.New(run.Config{
//	    Delay:    time.Minute,
//	    Watchers: []run.WatcherEntry{{Watcher: web}},
//	})
package probe
