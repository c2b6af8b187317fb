package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/domain/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	counterPruneJob *CounterPruneJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(allocator *services.OrderNumberAllocator, logger *slog.Logger) *JobManager {
	return &JobManager{
		counterPruneJob: NewCounterPruneJob(allocator, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.counterPruneJob.Start(); err != nil {
		return fmt.Errorf("failed to start counter prune job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.counterPruneJob.Stop()
}
