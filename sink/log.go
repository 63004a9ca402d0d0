package sink

import (
	"github.com/rs/zerolog"

	"github.com/jonwraymond/warden/run"
	"github.com/jonwraymond/warden/watch"
)

// Log writes every lifecycle event to a zerolog logger. All callbacks are
// synchronous; zerolog writes are cheap enough not to need the async chain.
type Log struct {
	log zerolog.Logger
}

// NewLog creates a logging sink.
func NewLog(logger zerolog.Logger) *Log {
	return &Log{log: logger}
}

// AttachRun registers run-scope logging callbacks.
func (s *Log) AttachRun(h *run.Hooks) {
	h.Start.On(func(info run.RunInfo) error {
		s.log.Info().Time("at", info.At).Msg("run started")
		return nil
	})
	h.Stop.On(func(info run.RunInfo) error {
		s.log.Info().Time("at", info.At).Msg("run stopped")
		return nil
	})
	h.IterationStart.On(func(info run.IterationInfo) error {
		s.log.Debug().Int64("ordinal", info.Ordinal).Msg("iteration started")
		return nil
	})
	h.IterationCompleted.On(func(it *run.Iteration) error {
		s.log.Info().
			Int64("ordinal", it.Ordinal).
			Int("results", len(it.Results)).
			Dur("took", it.CompletedAt.Sub(it.StartedAt)).
			Msg("iteration completed")
		return nil
	})
	h.Error.On(func(err error) error {
		s.log.Error().Err(err).Msg("run terminated")
		return nil
	})
}

// AttachWatcher registers watcher-scope logging callbacks.
func (s *Log) AttachWatcher(h *run.WatcherHooks) {
	h.Start.On(func(info run.CheckInfo) error {
		s.log.Debug().
			Str("watcher", info.Watcher).
			Int64("ordinal", info.Ordinal).
			Msg("check started")
		return nil
	})
	h.Success.On(func(r watch.Result) error {
		s.log.Info().
			Str("watcher", r.Outcome.Watcher).
			Dur("took", r.Duration()).
			Msg("check passed")
		return nil
	})
	h.Failure.On(func(r watch.Result) error {
		s.log.Warn().
			Str("watcher", r.Outcome.Watcher).
			Str("reason", r.Outcome.Description).
			Dur("took", r.Duration()).
			Msg("check failed")
		return nil
	})
	h.Error.On(func(err error) error {
		s.log.Error().Err(err).Msg("check errored")
		return nil
	})
	h.Completed.On(func(c run.Completion) error {
		s.log.Debug().
			Str("watcher", c.Watcher).
			Int64("ordinal", c.Ordinal).
			Bool("has_result", c.HasResult()).
			Msg("check completed")
		return nil
	})
}
