package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderAdvanceJob *OrderAdvanceJob
}

func NewJobManager(advancePendingHandler pendingOrdersAdvancer, schedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		orderAdvanceJob: NewOrderAdvanceJob(advancePendingHandler, schedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.orderAdvanceJob.Start(); err != nil {
		return fmt.Errorf("failed to start order advance job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderAdvanceJob.Stop()
}
