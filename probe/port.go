package probe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jonwraymond/warden/watch"
)

// TCPConfig configures the TCP probe.
type TCPConfig struct {
	// Address is the host:port to dial. Required.
	Address string

	// Timeout bounds the connection attempt. Default: 5 seconds.
	Timeout time.Duration
}

// TCPWatcher checks that a TCP endpoint accepts connections.
type TCPWatcher struct {
	name   string
	config TCPConfig
}

// NewTCPWatcher creates a new TCP probe.
func NewTCPWatcher(name string, config TCPConfig) *TCPWatcher {
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &TCPWatcher{name: name, config: config}
}

// Name returns the name of this probe.
func (w *TCPWatcher) Name() string {
	return w.name
}

// Execute dials the configured address once.
func (w *TCPWatcher) Execute(ctx context.Context) (watch.Outcome, error) {
	dialer := &net.Dialer{Timeout: w.config.Timeout}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", w.config.Address)
	latency := time.Since(start)
	if err != nil {
		return watch.Invalid(fmt.Sprintf("dial %s: %v", w.config.Address, err)), nil
	}
	conn.Close()

	return watch.Valid(fmt.Sprintf("%s accepts connections", w.config.Address)).WithDetails(map[string]any{
		"latency_ms": latency.Seconds() * 1000,
	}), nil
}
