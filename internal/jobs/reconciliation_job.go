package jobs

import (
	"context"
	"log/slog"

	"mes/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the audit at the start of every minute.
const DefaultReconcileSchedule = "0 * * * * *"

type reconcileHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileScheduledWorkOrdersCommand) error
}

// ReconciliationJob periodically re-splits every scheduled work order so that
// task sets changed outside the service converge back to their routes.
// A run still in progress when the next one is due causes that one to be skipped.
type ReconciliationJob struct {
	handler  reconcileHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates the job. schedule is a cron spec with a seconds field.
func NewReconciliationJob(handler reconcileHandler, schedule string, logger *slog.Logger) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "reconciliation_job"),
	}
}

func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running audit to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

func (j *ReconciliationJob) run() {
	ctx := context.Background()

	if err := j.handler.Handle(ctx, commands.NewReconcileScheduledWorkOrdersCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation job failed", "error", err)
	}
}
