package commands

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/ports"
)

// CreateRouteCommandHandler stores a new route template after checking that
// every referenced process exists.
type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
}

// NewCreateRouteCommandHandler creates a handler for route templates.
// Requires a RouteUoWFactory since process existence is checked in the same transaction.
func NewCreateRouteCommandHandler(uowFactory RouteUoWFactory) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the route and returns its identifier.
// Returns ObjectNotFoundError when a step names an unknown process.
func (h CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	rt, err := route.NewRoute(cmd.Name(), cmd.Steps())
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

	if err = ensureProcessesExist(ctx, uow.ProcessRepository(), cmd.Steps()); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.RouteRepository().Add(ctx, rt); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return rt.ID(), nil
}

// ensureProcessesExist returns ObjectNotFoundError for the first unknown process.
func ensureProcessesExist(ctx context.Context, repo ports.ProcessRepository, steps []route.StepDefinition) error {
	seen := make(map[kernel.UUID]struct{}, len(steps))
	for _, s := range steps {
		if _, ok := seen[s.ProcessID]; ok {
			continue
		}
		seen[s.ProcessID] = struct{}{}

		if _, err := repo.Get(ctx, s.ProcessID); err != nil {
			return err
		}
	}
	return nil
}
