package queries

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery reads a route with its steps in ascending order.
type GetRouteQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetRouteQuery creates a query for route id.
func NewGetRouteQuery(id kernel.UUID) (GetRouteQuery, error) {
	if err := id.Validate(); err != nil {
		return GetRouteQuery{}, err
	}
	return GetRouteQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// ID returns the route to read.
func (q GetRouteQuery) ID() kernel.UUID {
	return q.id
}

type GetRouteQueryResponse struct {
	ID    kernel.UUID
	Name  string
	Steps []RouteStepResponse
}

type RouteStepResponse struct {
	ID          kernel.UUID
	ProcessID   kernel.UUID
	ProcessName string
	Order       int
}
