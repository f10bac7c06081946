package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for route aggregates,
// both shared templates and the private routes owned by work orders.
type RouteRepository interface {
	// Add persists a new route together with all of its steps.
	Add(ctx context.Context, r *route.Route) error

	// Update persists the route name and its current step list. Steps that are
	// no longer part of the route are deleted, which unbinds their tasks.
	Update(ctx context.Context, r *route.Route) error

	// Get retrieves a route with its steps ordered ascending by order.
	// Returns ObjectNotFoundError when no route has this id.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// Delete removes a route and, by cascade, its steps.
	// Fails with RuleIsViolatedError while a work order still references it.
	Delete(ctx context.Context, id kernel.UUID) error
}
