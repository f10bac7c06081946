package commands

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/process"
)

// CreateProcessCommandHandler adds a process to the catalog.
type CreateProcessCommandHandler struct {
	uowFactory ProcessUoWFactory
}

// NewCreateProcessCommandHandler creates a handler that writes through a
// ProcessUoWFactory, one transaction per call.
func NewCreateProcessCommandHandler(uowFactory ProcessUoWFactory) CreateProcessCommandHandler {
	return CreateProcessCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the process and returns its identifier.
func (h CreateProcessCommandHandler) Handle(ctx context.Context, cmd CreateProcessCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	p, err := process.NewProcess(cmd.Name(), cmd.Description())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProcessRepository().Add(ctx, p); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return p.ID(), nil
}
