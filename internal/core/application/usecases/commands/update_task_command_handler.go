package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/services"
	"mes/internal/pkg/errs"
)

// UpdateTaskCommandHandler changes a task's status once the task gate allows it.
// The owning work order is locked first so that the gate sees the same route
// and sibling tasks that the change is committed against.
type UpdateTaskCommandHandler struct {
	uowFactory UoWFactory
	gate       services.TaskGate
	recorder   Recorder
	logger     *slog.Logger
}

// NewUpdateTaskCommandHandler creates a task status handler. Gate refusals
// are counted on recorder under "update_task".
func NewUpdateTaskCommandHandler(
	uowFactory UoWFactory,
	recorder Recorder,
	logger *slog.Logger,
) UpdateTaskCommandHandler {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return UpdateTaskCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewTaskGate(),
		recorder:   recorder,
		logger:     logger,
	}
}

// Handle applies the status change if the task gate allows it.
// Returns ObjectNotFoundError for an unknown task and the gate's
// RuleIsViolatedError otherwise.
func (h UpdateTaskCommandHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	taskRepo := uow.TaskRepository()

	current, err := taskRepo.Get(ctx, cmd.ID())
	if err != nil {
		return err
	}

	wo, rt, tasks, err := loadAggregate(ctx, uow, current.WorkOrderID())
	if err != nil {
		return err
	}

	// Use the copy read under the work-order lock.
	i := slices.IndexFunc(tasks, func(t *task.Task) bool { return t.ID().IsEqual(current.ID()) })
	if i < 0 {
		return errs.NewObjectNotFoundError("task", cmd.ID().String())
	}
	t := tasks[i]

	if err = h.gate.Check(wo, rt, tasks, t, cmd.Status()); err != nil {
		if errors.Is(err, errs.ErrRuleIsViolated) {
			h.recorder.RecordRejection("update_task")
			h.logger.InfoContext(ctx, "task change rejected",
				"task_id", t.ID().String(),
				"work_order_id", wo.ID().String(),
				"target", cmd.Status().String(),
				"reason", err.Error(),
			)
		}
		return err
	}

	if err = t.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = taskRepo.Update(ctx, t); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
