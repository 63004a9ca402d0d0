package run

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Scheduler owns one run's state: the running flag, the iteration ordinal,
// and the configuration handed to New. Instances are independent; any number
// may run concurrently in the same process.
type Scheduler struct {
	cfg Config

	mu      sync.Mutex
	running bool
	ordinal int64
}

// New validates cfg and creates a Scheduler. The configuration must not be
// mutated after this call.
func New(cfg Config) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg}, nil
}

// Running reports whether the run is currently in the Running state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start begins the run and blocks until it has fully stopped: by exhausting
// the iteration bound, by Stop taking effect at an iteration boundary, by
// context cancellation, or by an unrecoverable error. The returned error is
// nil except in the last case, in which the run-level Error hooks have
// already fired. Each Start restarts the iteration ordinal at 1.
//
// Calling Start while a previous Start is still running restarts the hook
// firing and loop entry concurrently; guarding against that is the caller's
// responsibility.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	s.ordinal = 1
	s.mu.Unlock()

	err := s.runLoop(ctx)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if err != nil {
		if herr := s.cfg.Hooks.Error.Fire(ctx, err); herr != nil {
			return errors.Join(err, herr)
		}
		return err
	}
	return nil
}

// Stop transitions the run to Stopped and fires the run-level Stop hooks,
// synchronous chain first. It does not interrupt an iteration already in
// flight; the loop observes the stop at its next boundary check.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return s.cfg.Hooks.Stop.Fire(ctx, RunInfo{At: time.Now().UTC()})
}

// runLoop is the top-level failure boundary: anything escaping the iteration
// executor's per-watcher isolation, including panics in hook or orchestration
// code, lands here and terminates the run.
func (s *Scheduler) runLoop(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("run: panic in run loop: %v", r)
		}
	}()

	if err := s.cfg.Hooks.Start.Fire(ctx, RunInfo{At: time.Now().UTC()}); err != nil {
		return err
	}

	for s.shouldIterate(ctx) {
		ordinal := s.currentOrdinal()
		startedAt := time.Now().UTC()

		if err := s.cfg.Hooks.IterationStart.Fire(ctx, IterationInfo{Ordinal: ordinal, StartedAt: startedAt}); err != nil {
			return err
		}
		iteration, err := s.executeIteration(ctx, ordinal)
		if err != nil {
			return err
		}
		if err := s.cfg.Hooks.IterationCompleted.Fire(ctx, iteration); err != nil {
			return err
		}

		s.wait(ctx)
		s.advance()
	}
	return nil
}

func (s *Scheduler) shouldIterate(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	return s.cfg.Iterations == 0 || s.ordinal <= s.cfg.Iterations
}

func (s *Scheduler) currentOrdinal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordinal
}

func (s *Scheduler) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordinal++
}

// wait pauses between iterations: until the schedule's next activation when
// one is configured, otherwise for the fixed delay. Context cancellation
// cuts the pause short.
func (s *Scheduler) wait(ctx context.Context) {
	var d time.Duration
	if s.cfg.Schedule != nil {
		now := time.Now()
		d = s.cfg.Schedule.Next(now).Sub(now)
	} else {
		d = s.cfg.Delay
	}
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
