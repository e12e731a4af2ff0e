// Package jobs runs periodic maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/application/usecase/inventory"
)

// Cleaner drops expired rate limit state.
type Cleaner interface {
	Cleanup()
}

// Scheduler wraps a cron runner with the application's jobs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the rate limiter cleanup and the low-stock sweep.
func NewScheduler(cfg *config.JobsConfig, limiter Cleaner, sweep *inventory.SweepLowStockUseCase) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid jobs timezone: %w", err)
	}

	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.RateLimitCleanup, limiter.Cleanup); err != nil {
		return nil, fmt.Errorf("failed to schedule rate limit cleanup: %w", err)
	}

	_, err = c.AddFunc(cfg.LowStockSweep, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := sweep.Execute(ctx); err != nil {
			slog.Error("Low-stock sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule low-stock sweep: %w", err)
	}

	return &Scheduler{cron: c}, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs up to the context deadline.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
