package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// CycleFunc runs one ingestion cycle. The scheduler's RunCycle is adapted to
// this shape at the composition root.
type CycleFunc func(ctx context.Context) error

// CronRunner triggers ingestion cycles on a cron schedule instead of a fixed
// interval. The startup cycle still runs immediately.
type CronRunner struct {
	cron    *cron.Cron
	run     CycleFunc
	timeout time.Duration
}

// NewCronRunner creates a runner for the given schedule and timezone. The
// schedule uses the standard five-field cron format.
func NewCronRunner(schedule, timezone string, timeout time.Duration, run CycleFunc) (*CronRunner, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	r := &CronRunner{cron: c, run: run, timeout: timeout}

	if _, err := c.AddFunc(schedule, r.runOnce); err != nil {
		return nil, fmt.Errorf("register cron schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start runs the startup cycle, then hands control to the cron scheduler.
func (r *CronRunner) Start() {
	slog.Info("cron ingestion runner started")
	go r.runOnce()
	r.cron.Start()
}

// Stop halts the cron scheduler and waits for a running cycle to finish.
func (r *CronRunner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	slog.Info("cron ingestion runner stopped")
}

func (r *CronRunner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.run(ctx); err != nil {
		slog.Error("scheduled ingestion cycle failed", slog.Any("error", err))
	}
}
