package commands

import (
	"context"
	"errors"
	"log/slog"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"
	"mes/internal/core/ports"
	"mes/internal/pkg/errs"
)

// workOrderWriter persists the outcome of a lifecycle decision inside an open
// unit of work and runs the reconciler when the decision asks for it.
type workOrderWriter struct {
	lifecycle  services.WorkOrderLifecycle
	reconciler services.TaskReconciler
	recorder   Recorder
	logger     *slog.Logger
}

func newWorkOrderWriter(recorder Recorder, logger *slog.Logger) workOrderWriter {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return workOrderWriter{
		lifecycle:  services.NewWorkOrderLifecycle(),
		reconciler: services.NewTaskReconciler(),
		recorder:   recorder,
		logger:     logger,
	}
}

// prepareUpdate builds the update to apply once the locked aggregate is loaded.
type prepareUpdate func(ctx context.Context, uow UoW) (services.WorkOrderUpdate, error)

// edit locks the work order, lets the lifecycle decide on the update built by
// prepare and persists the result in one transaction.
func (w workOrderWriter) edit(
	ctx context.Context,
	uowFactory UoWFactory,
	id kernel.UUID,
	operation string,
	prepare prepareUpdate,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wo, rt, tasks, err := loadAggregate(ctx, uow, id)
	if err != nil {
		return err
	}

	upd, err := prepare(ctx, uow)
	if err != nil {
		return err
	}

	change, err := w.lifecycle.Update(wo, rt, tasks, upd)
	if err != nil {
		w.rejected(ctx, operation, wo.ID(), err)
		return err
	}

	plan, err := w.save(ctx, uow, wo, tasks, change)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if change.Reconcile {
		w.recorder.RecordSplit(len(plan.Missing), len(plan.Obsolete))
	}
	return nil
}

// save writes the route, the work order and, if requested, the reconciled
// tasks in an order the foreign keys accept: a new private route exists before
// the order points at it, and the retired one is dropped after.
func (w workOrderWriter) save(
	ctx context.Context,
	uow UoW,
	wo *workorder.WorkOrder,
	tasks []*task.Task,
	change services.WorkOrderChange,
) (services.ReconciliationPlan, error) {
	routeRepo := uow.RouteRepository()

	switch {
	case change.RetiredRoute != nil:
		if err := routeRepo.Add(ctx, change.Route); err != nil {
			return services.ReconciliationPlan{}, err
		}
	case change.RouteChanged():
		if err := routeRepo.Update(ctx, change.Route); err != nil {
			return services.ReconciliationPlan{}, err
		}
	}

	if err := uow.WorkOrderRepository().Update(ctx, wo); err != nil {
		return services.ReconciliationPlan{}, err
	}

	var plan services.ReconciliationPlan
	if change.Reconcile {
		var err error
		if plan, err = w.reconcile(ctx, uow.TaskRepository(), wo, change.Route, tasks); err != nil {
			return services.ReconciliationPlan{}, err
		}
	}

	if change.RetiredRoute != nil {
		if err := routeRepo.Delete(ctx, change.RetiredRoute.ID()); err != nil {
			return services.ReconciliationPlan{}, err
		}
	}

	return plan, nil
}

// reconcile makes the stored tasks of wo match rt. Any failure is logged with
// its cause and reported as the public split failure.
func (w workOrderWriter) reconcile(
	ctx context.Context,
	repo ports.TaskRepository,
	wo *workorder.WorkOrder,
	rt *route.Route,
	tasks []*task.Task,
) (services.ReconciliationPlan, error) {
	plan, err := w.reconciler.Plan(wo, rt, tasks)
	if err == nil {
		err = repo.Delete(ctx, plan.Obsolete...)
	}
	if err == nil {
		err = repo.Add(ctx, plan.Missing...)
	}

	if err != nil {
		w.recorder.RecordSplitFailure()
		w.logger.ErrorContext(ctx, "work order split failed",
			"work_order_id", wo.ID().String(),
			"route_id", rt.ID().String(),
			"error", err,
		)
		return services.ReconciliationPlan{}, errs.NewInternalError(workorder.SplitFailedMessage, err)
	}

	w.logger.InfoContext(ctx, "work order split",
		"work_order_id", wo.ID().String(),
		"created", len(plan.Missing),
		"deleted", len(plan.Obsolete),
	)
	return plan, nil
}

func (w workOrderWriter) rejected(ctx context.Context, operation string, id kernel.UUID, err error) {
	if !errors.Is(err, errs.ErrRuleIsViolated) {
		return
	}

	w.recorder.RecordRejection(operation)
	w.logger.InfoContext(ctx, "work order change rejected",
		"operation", operation,
		"work_order_id", id.String(),
		"reason", err.Error(),
	)
}

// loadAggregate locks the work order and reads its route and tasks.
func loadAggregate(
	ctx context.Context,
	uow UoW,
	id kernel.UUID,
) (*workorder.WorkOrder, *route.Route, []*task.Task, error) {
	wo, err := uow.WorkOrderRepository().GetForUpdate(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}

	rt, err := uow.RouteRepository().Get(ctx, wo.RouteID())
	if err != nil {
		return nil, nil, nil, err
	}

	tasks, err := uow.TaskRepository().GetByWorkOrder(ctx, wo.ID())
	if err != nil {
		return nil, nil, nil, err
	}

	return wo, rt, tasks, nil
}
