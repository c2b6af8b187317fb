package jobs

import (
	"context"
	"log/slog"
	"time"

	"orders/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// CounterPruneJob drops order number sequence counters from previous UTC
// days. Counters are keyed by (channel, date), so yesterday's entries can
// never be read again once the date rolls over.
type CounterPruneJob struct {
	allocator *services.OrderNumberAllocator
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewCounterPruneJob creates a job that prunes the allocator at UTC
// midnight.
func NewCounterPruneJob(allocator *services.OrderNumberAllocator, logger *slog.Logger) *CounterPruneJob {
	return &CounterPruneJob{
		allocator: allocator,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		logger:    logger.With("component", "counter_prune_job"),
	}
}

// Start schedules the prune to run at midnight UTC every day.
func (j *CounterPruneJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * *", func() {
		cutoff := time.Now().UTC().Truncate(24 * time.Hour)
		dropped := j.allocator.PruneBefore(cutoff)
		if dropped > 0 {
			j.logger.InfoContext(context.Background(), "Pruned stale sequence counters",
				"dropped", dropped, "cutoff", cutoff.Format("2006-01-02"))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Counter prune job started (running at UTC midnight)")
	return nil
}

// Stop stops the prune job.
func (j *CounterPruneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Counter prune job stopped")
}
