package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

// WebhookConfig configures the webhook alert sink.
type WebhookConfig struct {
	// URL receives the alert posts. Required.
	URL string

	// Method is the request method. Default: POST.
	Method string

	// Secret, when non-empty, signs each request with an HS256 JWT carried
	// in the Authorization header so receivers can verify the sender.
	Secret string

	// Issuer is the JWT issuer claim. Default: "warden".
	Issuer string

	// Cooldown is the minimum interval between alerts for the same
	// watcher. Zero disables the cooldown.
	Cooldown time.Duration

	// RatePerMinute caps alert deliveries across all watchers.
	// Zero disables the cap.
	RatePerMinute float64

	// Timeout bounds each delivery. Default: 10 seconds.
	// Ignored when Client is set.
	Timeout time.Duration

	// Client overrides the HTTP client used for deliveries.
	Client *http.Client
}

// Alert is the JSON body of a webhook delivery.
type Alert struct {
	Watcher     string    `json:"watcher"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Webhook posts an Alert whenever a watcher fails its check or errors.
// Deliveries triggered by Failure hooks propagate delivery errors (reported
// through the watcher's Error hooks); deliveries triggered by Error hooks
// discard delivery errors, so a broken alert channel cannot terminate the
// run.
type Webhook struct {
	config  WebhookConfig
	client  *http.Client
	limiter *rate.Limiter

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewWebhook creates a webhook alert sink.
func NewWebhook(config WebhookConfig) *Webhook {
	if config.Method == "" {
		config.Method = http.MethodPost
	}
	if config.Issuer == "" {
		config.Issuer = "warden"
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}

	var limiter *rate.Limiter
	if config.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RatePerMinute/60), 1)
	}

	return &Webhook{
		config:   config,
		client:   client,
		limiter:  limiter,
		lastSent: make(map[string]time.Time),
	}
}

// AttachWatcher registers the alert callbacks on the Failure and Error
// chains.
func (s *Webhook) AttachWatcher(h *run.WatcherHooks) {
	h.Failure.OnAsync(func(ctx context.Context, r watch.Result) error {
		return s.Notify(ctx, Alert{
			Watcher:     r.Outcome.Watcher,
			Status:      "failure",
			Description: r.Outcome.Description,
			OccurredAt:  r.CompletedAt,
		})
	})
	h.Error.OnAsync(func(ctx context.Context, err error) error {
		watcher := "unknown"
		var werr *run.WatcherError
		if errors.As(err, &werr) {
			watcher = werr.Watcher
		}
		_ = s.Notify(ctx, Alert{
			Watcher:     watcher,
			Status:      "error",
			Description: err.Error(),
			OccurredAt:  time.Now().UTC(),
		})
		return nil
	})
}

// Notify delivers one alert, honoring the per-watcher cooldown and the
// global rate cap. Suppressed alerts are dropped silently.
func (s *Webhook) Notify(ctx context.Context, alert Alert) error {
	if !s.shouldSend(alert.Watcher) {
		return nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return nil
	}

	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("sink: marshal alert: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, s.config.Method, s.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sink: build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if s.config.Secret != "" {
		token, err := s.signToken(alert.Watcher)
		if err != nil {
			return fmt.Errorf("sink: sign alert: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sink: deliver alert: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sink: alert response: %s", resp.Status)
	}
	return nil
}

func (s *Webhook) shouldSend(watcher string) bool {
	if s.config.Cooldown <= 0 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if last, ok := s.lastSent[watcher]; ok && now.Sub(last) < s.config.Cooldown {
		return false
	}
	s.lastSent[watcher] = now
	return true
}

func (s *Webhook) signToken(watcher string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.config.Issuer,
		"sub": watcher,
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}
