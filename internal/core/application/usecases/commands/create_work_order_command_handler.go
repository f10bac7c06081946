package commands

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/workorder"
)

// CreateWorkOrderCommandHandler clones the requested template into a route
// owned by the new work order, so later edits of either never leak into the other.
type CreateWorkOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateWorkOrderCommandHandler creates a handler for new work orders.
func NewCreateWorkOrderCommandHandler(uowFactory UoWFactory) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle clones the template, stores the clone and the draft order in one
// transaction and returns the order's identifier.
// Returns ObjectNotFoundError when the template does not exist.
func (h CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()

	template, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return kernel.UUID{}, err
	}

	private, err := template.Clone(cmd.Name())
	if err != nil {
		return kernel.UUID{}, err
	}

	wo, err := workorder.NewWorkOrder(cmd.Name(), private.ID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = routeRepo.Add(ctx, private); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.WorkOrderRepository().Add(ctx, wo); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return wo.ID(), nil
}
