package commands

import (
	"context"
	"log/slog"

	"mes/internal/core/domain/services"
)

// DeleteWorkOrderCommandHandler removes an unscheduled work order. Its tasks
// go with it through the schema cascade; its private route is deleted afterwards.
type DeleteWorkOrderCommandHandler struct {
	uowFactory UoWFactory
	writer     workOrderWriter
}

// NewDeleteWorkOrderCommandHandler creates a delete handler. Refusals are
// counted on recorder and logged on logger; a nil logger is replaced by slog.Default.
func NewDeleteWorkOrderCommandHandler(
	uowFactory UoWFactory,
	recorder Recorder,
	logger *slog.Logger,
) DeleteWorkOrderCommandHandler {
	return DeleteWorkOrderCommandHandler{
		uowFactory: uowFactory,
		writer:     newWorkOrderWriter(recorder, logger),
	}
}

// Handle locks the order, checks that it is not scheduled and deletes it
// together with its private route.
// Returns workorder.ErrScheduledCannotBeDeleted for a scheduled order.
func (h DeleteWorkOrderCommandHandler) Handle(ctx context.Context, cmd DeleteWorkOrderCommand) error {
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

	workOrderRepo := uow.WorkOrderRepository()

	wo, err := workOrderRepo.GetForUpdate(ctx, cmd.ID())
	if err != nil {
		return err
	}

	if err = services.NewWorkOrderLifecycle().CheckDelete(wo); err != nil {
		h.writer.rejected(ctx, "delete_work_order", wo.ID(), err)
		return err
	}

	if err = workOrderRepo.Delete(ctx, wo.ID()); err != nil {
		return err
	}

	if err = uow.RouteRepository().Delete(ctx, wo.RouteID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
