package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *ReconciliationJob
}

// NewJobManager creates the jobs. An empty reconcileSchedule disables the
// reconciliation job.
func NewJobManager(
	reconcileHandler reconcileHandler,
	reconcileSchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if reconcileSchedule != "" {
		jm.reconciliationJob = NewReconciliationJob(reconcileHandler, reconcileSchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.reconciliationJob == nil {
		return nil
	}

	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.reconciliationJob != nil {
		jm.reconciliationJob.Stop()
	}
}
