// File: cron/scheduler.go
package cron

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"medbuddy/services/scheduler"
	"medbuddy/utils"
)

// SweepRunner owns the two periodic background sweeps. Start launches one
// goroutine per sweep; Stop cancels both and waits for them to drain. Tests
// bypass the runner and call the sweep methods directly.
type SweepRunner struct {
	Expiry   *scheduler.ExpiryScheduler
	Reminder *scheduler.ReminderScheduler

	ExpiryInterval   time.Duration
	ReminderInterval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start launches the sweep loops. Calling Start twice is a bug.
func (r *SweepRunner) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel

	r.wg.Add(2)
	go r.loop(ctx, "expiry", r.ExpiryInterval, r.Expiry.RunExpirySweep)
	go r.loop(ctx, "reminder", r.ReminderInterval, r.Reminder.RunReminderSweep)
}

// Stop cancels the loops and blocks until both have exited.
func (r *SweepRunner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// loop runs one sweep on a fixed interval. A failed run is logged and
// abandoned; the loop itself never exits on error.
func (r *SweepRunner) loop(ctx context.Context, name string, interval time.Duration, sweep func(context.Context) error) {
	defer r.wg.Done()

	logger := utils.GetLogger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("sweep loop started", zap.String("sweep", name), zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("sweep loop shutdown signal received", zap.String("sweep", name))
			return
		case <-ticker.C:
			if err := sweep(ctx); err != nil {
				logger.Error("sweep run failed", zap.String("sweep", name), zap.Error(err))
			}
		}
	}
}
