package commands

import (
	"context"
	"errors"
	"log/slog"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
)

// ReconcileScheduledWorkOrdersCommandHandler runs the reconciler over every
// scheduled work order, each in its own transaction so that one broken order
// does not block the others. Orders already in sync are not written.
type ReconcileScheduledWorkOrdersCommandHandler struct {
	uowFactory UoWFactory
	writer     workOrderWriter
}

// NewReconcileScheduledWorkOrdersCommandHandler creates the handler behind
// the reconciliation job.
func NewReconcileScheduledWorkOrdersCommandHandler(
	uowFactory UoWFactory,
	recorder Recorder,
	logger *slog.Logger,
) ReconcileScheduledWorkOrdersCommandHandler {
	return ReconcileScheduledWorkOrdersCommandHandler{
		uowFactory: uowFactory,
		writer:     newWorkOrderWriter(recorder, logger),
	}
}

// Handle returns the joined errors of every order that failed.
func (h ReconcileScheduledWorkOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileScheduledWorkOrdersCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ids, err := h.uowFactory.Create().WorkOrderRepository().GetAllScheduledIDs(ctx)
	if err != nil {
		return err
	}

	var failures []error
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return errors.Join(append(failures, err)...)
		}
		if err = h.reconcileOne(ctx, id); err != nil {
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (h ReconcileScheduledWorkOrdersCommandHandler) reconcileOne(ctx context.Context, id kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wo, rt, tasks, err := loadAggregate(ctx, uow, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	// The order may have been changed between listing and locking.
	if !wo.IsScheduled() {
		return nil
	}

	plan, err := h.writer.reconciler.Plan(wo, rt, tasks)
	if err != nil {
		return err
	}
	if plan.IsEmpty() {
		return nil
	}

	if plan, err = h.writer.reconcile(ctx, uow.TaskRepository(), wo, rt, tasks); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.writer.recorder.RecordSplit(len(plan.Missing), len(plan.Obsolete))
	return nil
}
