package watch

import "time"

// Result is an immutable record of one watcher execution that completed
// without error. It pairs the reported Outcome with UTC timestamps taken
// immediately before and after the execution.
type Result struct {
	// Outcome is what the watcher reported.
	Outcome Outcome

	// StartedAt is when the execution began, in UTC.
	StartedAt time.Time

	// CompletedAt is when the execution finished, in UTC.
	// Never earlier than StartedAt.
	CompletedAt time.Time
}

// NewResult builds a Result from an outcome and its execution timestamps.
// Timestamps are normalized to UTC; a completion time earlier than the start
// time is clamped to the start time.
func NewResult(outcome Outcome, startedAt, completedAt time.Time) Result {
	startedAt = startedAt.UTC()
	completedAt = completedAt.UTC()
	if completedAt.Before(startedAt) {
		completedAt = startedAt
	}
	return Result{
		Outcome:     outcome,
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}
}

// Duration returns how long the execution took.
func (r Result) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
