package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcoot/blockdrop/internal/dependencies/clock"
	"github.com/mcoot/blockdrop/internal/model"
)

// Submitter accepts commands for serialized execution
type Submitter interface {
	Submit(ctx context.Context, cmd model.Command) (model.CommandResult, error)
}

// Scheduler issues a gravity command on every tick.
// Start, Stop and SetInterval may be called from any goroutine.
type Scheduler struct {
	submitter Submitter
	clock     clock.Clock
	logger    *slog.Logger

	mu       sync.Mutex
	interval time.Duration
	ticker   clock.Ticker
	cancel   context.CancelFunc
	done     chan struct{}

	ticks atomic.Int64
}

// NewScheduler creates a stopped scheduler
func NewScheduler(submitter Submitter, clk clock.Clock, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %s", model.ErrInvalidInterval, interval)
	}
	return &Scheduler{
		submitter: submitter,
		clock:     clk,
		interval:  interval,
		logger:    logger.With(slog.String("component", "scheduler")),
	}, nil
}

// Start begins ticking. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.ticker = s.clock.NewTicker(s.interval)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx, s.ticker, s.done)
	s.logger.Debug("scheduler started", slog.Duration("interval", s.interval))
}

// Stop halts ticking and waits for an in-flight tick to finish.
// Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.ticker = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Debug("scheduler stopped", slog.Int64("ticks", s.ticks.Load()))
}

// SetInterval changes the tick period, taking effect immediately if running
func (s *Scheduler) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: got %s", model.ErrInvalidInterval, d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
	if s.ticker != nil {
		s.ticker.Reset(d)
	}
	return nil
}

// Interval returns the current tick period
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Running reports whether the scheduler is ticking
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Ticks returns how many gravity commands have been submitted
func (s *Scheduler) Ticks() int64 {
	return s.ticks.Load()
}

func (s *Scheduler) run(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	defer close(done)
	defer s.release(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			s.ticks.Add(1)
			_, err := s.submitter.Submit(ctx, model.GravityCommand())
			switch {
			case err == nil:
			case errors.Is(err, model.ErrDispatcherClosed):
				s.logger.Debug("dispatcher closed, scheduler exiting")
				return
			case errors.Is(err, context.Canceled):
				return
			default:
				s.logger.Warn("gravity tick failed", slog.String("error", err.Error()))
			}
		}
	}
}

// release marks the scheduler stopped when run exits on its own, so a later
// Start can tick again. A newer run started after Stop is left alone.
func (s *Scheduler) release(done chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != done || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.ticker = nil
	s.logger.Debug("scheduler exited", slog.Int64("ticks", s.ticks.Load()))
}
