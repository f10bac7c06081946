package commands

import (
	"context"
	"log/slog"

	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"
)

// UpdateWorkOrderCommandHandler applies a partial update under the work-order
// lifecycle rules. Scheduling, and route edits of a scheduled order, split the
// order into tasks in the same transaction; a failed split rolls back the
// whole update and surfaces as an InternalError.
type UpdateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
	writer     workOrderWriter
}

// NewUpdateWorkOrderCommandHandler creates the work-order update handler.
func NewUpdateWorkOrderCommandHandler(
	uowFactory UoWFactory,
	recorder Recorder,
	logger *slog.Logger,
) UpdateWorkOrderCommandHandler {
	return UpdateWorkOrderCommandHandler{
		uowFactory: uowFactory,
		writer:     newWorkOrderWriter(recorder, logger),
	}
}

// Handle locks the order and applies the patch under the lifecycle rules.
// A route template named by the patch is loaded in the same transaction.
func (h UpdateWorkOrderCommandHandler) Handle(ctx context.Context, cmd UpdateWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.writer.edit(ctx, h.uowFactory, cmd.ID(), "update_work_order",
		func(ctx context.Context, uow UoW) (services.WorkOrderUpdate, error) {
			upd := services.WorkOrderUpdate{
				Fields:    cmd.Fields(),
				Name:      cmd.Name(),
				Status:    cmd.Status(),
				Scheduled: cmd.Scheduled(),
				Steps:     cmd.Steps(),
			}

			if upd.Fields.Has(workorder.FieldRoute) {
				template, err := uow.RouteRepository().Get(ctx, cmd.RouteID())
				if err != nil {
					return services.WorkOrderUpdate{}, err
				}
				upd.Template = template
			}

			if upd.Fields.Has(workorder.FieldSteps) {
				if err := ensureProcessesExist(ctx, uow.ProcessRepository(), upd.Steps); err != nil {
					return services.WorkOrderUpdate{}, err
				}
			}

			return upd, nil
		})
}
