package probe

import (
	"context"
	"fmt"
	"time"

	ping "github.com/prometheus-community/pro-bing"

	"github.com/jonwraymond/warden/watch"
)

// PingConfig configures the ICMP probe.
type PingConfig struct {
	// Host is the target to ping. Required.
	Host string

	// Count is the number of echo requests per check. Default: 3.
	Count int

	// Timeout bounds the whole check. Default: 5 seconds.
	Timeout time.Duration

	// MaxLossPercent is the highest tolerated packet loss.
	// Default: 0 (every packet must be answered).
	MaxLossPercent float64

	// Privileged sends raw ICMP packets instead of UDP. Raw sockets
	// usually require elevated privileges.
	Privileged bool
}

// PingWatcher checks that a host answers ICMP echo requests within the
// configured packet-loss bound.
type PingWatcher struct {
	name   string
	config PingConfig
}

// NewPingWatcher creates a new ICMP probe.
func NewPingWatcher(name string, config PingConfig) *PingWatcher {
	if config.Count <= 0 {
		config.Count = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &PingWatcher{name: name, config: config}
}

// Name returns the name of this probe.
func (w *PingWatcher) Name() string {
	return w.name
}

// Execute sends the configured number of echo requests and evaluates packet
// loss. A socket that cannot be opened at all returns an error.
func (w *PingWatcher) Execute(ctx context.Context) (watch.Outcome, error) {
	pinger, err := ping.NewPinger(w.config.Host)
	if err != nil {
		return watch.Outcome{}, fmt.Errorf("probe: init pinger: %w", err)
	}
	pinger.SetPrivileged(w.config.Privileged)
	pinger.Count = w.config.Count
	pinger.Timeout = w.config.Timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return watch.Outcome{}, fmt.Errorf("probe: ping %s: %w", w.config.Host, err)
	}
	stats := pinger.Statistics()

	details := map[string]any{
		"packets_sent":     stats.PacketsSent,
		"packets_received": stats.PacketsRecv,
		"packet_loss":      stats.PacketLoss,
		"rtt_avg_ms":       stats.AvgRtt.Seconds() * 1000,
		"rtt_max_ms":       stats.MaxRtt.Seconds() * 1000,
	}

	if stats.PacketLoss > w.config.MaxLossPercent {
		return watch.Invalid(fmt.Sprintf("%s: %.1f%% packet loss", w.config.Host, stats.PacketLoss)).WithDetails(details), nil
	}
	return watch.Valid(fmt.Sprintf("%s reachable, avg rtt %s", w.config.Host, stats.AvgRtt)).WithDetails(details), nil
}
