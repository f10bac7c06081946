package commands

import (
	"context"
	"log/slog"

	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"
)

// SplitWorkOrderCommandHandler is the standalone split: it behaves exactly like
// an update that sets scheduled to true. Splitting an order that is already
// scheduled re-runs the reconciliation, which is a no-op when nothing drifted.
type SplitWorkOrderCommandHandler struct {
	uowFactory UoWFactory
	writer     workOrderWriter
}

// NewSplitWorkOrderCommandHandler creates a split handler.
// Committed splits and their task counts are reported to recorder.
func NewSplitWorkOrderCommandHandler(
	uowFactory UoWFactory,
	recorder Recorder,
	logger *slog.Logger,
) SplitWorkOrderCommandHandler {
	return SplitWorkOrderCommandHandler{
		uowFactory: uowFactory,
		writer:     newWorkOrderWriter(recorder, logger),
	}
}

// Handle locks the work order, creates the missing tasks, drops the obsolete
// ones and marks the order scheduled in one transaction.
// Returns workorder.ErrOnlyApprovedCanBeSplit unless the order is approved,
// and an InternalError when the reconciliation itself fails.
func (h SplitWorkOrderCommandHandler) Handle(ctx context.Context, cmd SplitWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.writer.edit(ctx, h.uowFactory, cmd.ID(), "split_work_order",
		func(context.Context, UoW) (services.WorkOrderUpdate, error) {
			return services.WorkOrderUpdate{
				Fields:    workorder.NewFieldSet(workorder.FieldScheduled),
				Scheduled: true,
			}, nil
		})
}
