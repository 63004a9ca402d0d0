package watch

import (
	"testing"
	"time"
)

func TestNewResult(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	completed := started.Add(250 * time.Millisecond)

	r := NewResult(Valid("ok"), started, completed)

	if !r.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", r.StartedAt, started)
	}
	if !r.CompletedAt.Equal(completed) {
		t.Errorf("CompletedAt = %v, want %v", r.CompletedAt, completed)
	}
	if r.Duration() != 250*time.Millisecond {
		t.Errorf("Duration() = %v, want 250ms", r.Duration())
	}
}

func TestNewResult_UTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)

	r := NewResult(Valid("ok"), started, started.Add(time.Second))

	if r.StartedAt.Location() != time.UTC {
		t.Errorf("StartedAt location = %v, want UTC", r.StartedAt.Location())
	}
	if r.CompletedAt.Location() != time.UTC {
		t.Errorf("CompletedAt location = %v, want UTC", r.CompletedAt.Location())
	}
}

func TestNewResult_ClampsCompletedAt(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// Completion before start can only come from a broken clock; the record
	// must still satisfy CompletedAt >= StartedAt.
	r := NewResult(Valid("ok"), started, started.Add(-time.Second))

	if r.CompletedAt.Before(r.StartedAt) {
		t.Errorf("CompletedAt %v precedes StartedAt %v", r.CompletedAt, r.StartedAt)
	}
	if r.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", r.Duration())
	}
}
