package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oliveagle/jsonpath"

	"github.com/jonwraymond/warden/watch"
)

// HTTPConfig configures the HTTP probe.
type HTTPConfig struct {
	// URL is the target to request. Required.
	URL string

	// Method is the request method. Default: GET.
	Method string

	// Headers are added to every request.
	Headers map[string]string

	// Timeout bounds the whole request. Default: 10 seconds.
	// Ignored when Client is set.
	Timeout time.Duration

	// ExpectStatus is the exact status code the check expects.
	// Zero means any 2xx status passes.
	ExpectStatus int

	// BodyContains, when non-empty, requires the response body to contain
	// this substring.
	BodyContains string

	// JSONPath, when non-empty, is evaluated against the JSON response
	// body (e.g. "$.status"). The lookup must succeed; when JSONPathValue
	// is also set, the looked-up value must match it textually.
	JSONPath string

	// JSONPathValue is the expected value at JSONPath.
	JSONPathValue string

	// Client overrides the HTTP client used for requests.
	Client *http.Client
}

// HTTPWatcher checks that an HTTP endpoint responds as expected. An endpoint
// that is unreachable or violates an assertion reports an invalid outcome;
// only a misconfigured probe returns an error.
type HTTPWatcher struct {
	name   string
	config HTTPConfig
	client *http.Client
}

// NewHTTPWatcher creates a new HTTP probe.
func NewHTTPWatcher(name string, config HTTPConfig) *HTTPWatcher {
	if config.Method == "" {
		config.Method = http.MethodGet
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &HTTPWatcher{name: name, config: config, client: client}
}

// Name returns the name of this probe.
func (w *HTTPWatcher) Name() string {
	return w.name
}

// Execute performs the request and evaluates the configured assertions.
func (w *HTTPWatcher) Execute(ctx context.Context) (watch.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, w.config.Method, w.config.URL, nil)
	if err != nil {
		return watch.Outcome{}, fmt.Errorf("probe: build request: %w", err)
	}
	for k, v := range w.config.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := w.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return watch.Invalid(fmt.Sprintf("request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return watch.Invalid(fmt.Sprintf("read response: %v", err)), nil
	}

	details := map[string]any{
		"status_code": resp.StatusCode,
		"latency_ms":  latency.Seconds() * 1000,
	}

	if reason, ok := w.assertStatus(resp.StatusCode); !ok {
		return watch.Invalid(reason).WithDetails(details), nil
	}
	if w.config.BodyContains != "" && !strings.Contains(string(body), w.config.BodyContains) {
		return watch.Invalid(fmt.Sprintf("body does not contain %q", w.config.BodyContains)).WithDetails(details), nil
	}
	if w.config.JSONPath != "" {
		if reason, ok := w.assertJSONPath(body); !ok {
			return watch.Invalid(reason).WithDetails(details), nil
		}
	}

	return watch.Valid(fmt.Sprintf("%s responded %d", w.config.URL, resp.StatusCode)).WithDetails(details), nil
}

func (w *HTTPWatcher) assertStatus(code int) (string, bool) {
	if w.config.ExpectStatus != 0 {
		if code != w.config.ExpectStatus {
			return fmt.Sprintf("expected status %d, got %d", w.config.ExpectStatus, code), false
		}
		return "", true
	}
	if code < 200 || code > 299 {
		return fmt.Sprintf("expected 2xx status, got %d", code), false
	}
	return "", true
}

func (w *HTTPWatcher) assertJSONPath(body []byte) (string, bool) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Sprintf("parse json: %v", err), false
	}
	val, err := jsonpath.JsonPathLookup(parsed, w.config.JSONPath)
	if err != nil {
		return fmt.Sprintf("jsonpath %s: %v", w.config.JSONPath, err), false
	}
	if w.config.JSONPathValue != "" {
		got := fmt.Sprintf("%v", val)
		if got != w.config.JSONPathValue {
			return fmt.Sprintf("jsonpath %s = %q, want %q", w.config.JSONPath, got, w.config.JSONPathValue), false
		}
	}
	return "", true
}
