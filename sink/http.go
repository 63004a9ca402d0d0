package sink

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/jonwraymond/warden/run"
)

// StateResponse is the JSON served by the State handler.
type StateResponse struct {
	Ordinal     int64           `json:"ordinal"`
	StartedAt   string          `json:"started_at"`
	CompletedAt string          `json:"completed_at"`
	Checks      []CheckResponse `json:"checks"`
}

// CheckResponse is one watcher's result within a StateResponse.
type CheckResponse struct {
	Watcher     string         `json:"watcher"`
	Valid       bool           `json:"valid"`
	Description string         `json:"description,omitempty"`
	Duration    string         `json:"duration"`
	Details     map[string]any `json:"details,omitempty"`
}

// State retains the most recent iteration and serves it over HTTP, so hosts
// can expose a monitoring endpoint without persisting anything.
type State struct {
	mu     sync.RWMutex
	latest *run.Iteration
}

// NewState creates a state sink.
func NewState() *State {
	return &State{}
}

// AttachRun registers the callback that retains each completed iteration.
func (s *State) AttachRun(h *run.Hooks) {
	h.IterationCompleted.On(func(it *run.Iteration) error {
		s.mu.Lock()
		s.latest = it
		s.mu.Unlock()
		return nil
	})
}

// Latest returns the most recent iteration, or nil before the first one
// completes.
func (s *State) Latest() *run.Iteration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// ServeHTTP serves the latest iteration as JSON. Before the first iteration
// completes it responds 503; when any check is invalid it responds 503 with
// the full body so load balancers can use the endpoint as a readiness probe.
func (s *State) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	it := s.Latest()
	if it == nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("NO DATA"))
		return
	}

	response := StateResponse{
		Ordinal:     it.Ordinal,
		StartedAt:   it.StartedAt.Format(time.RFC3339),
		CompletedAt: it.CompletedAt.Format(time.RFC3339),
		Checks:      make([]CheckResponse, 0, len(it.Results)),
	}
	allValid := true
	for _, res := range it.Results {
		if !res.Outcome.Valid {
			allValid = false
		}
		response.Checks = append(response.Checks, CheckResponse{
			Watcher:     res.Outcome.Watcher,
			Valid:       res.Outcome.Valid,
			Description: res.Outcome.Description,
			Duration:    res.Duration().String(),
			Details:     res.Outcome.Details,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if allValid {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(response)
}
