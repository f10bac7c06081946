package queries

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

// GetWorkOrderQuery reads the header of one work order.
//
// Example:
//
//	query, err := NewGetWorkOrderQuery(id)
//	wo, err := NewGetWorkOrderQueryHandler(db).Handle(ctx, query)
//	fmt.Println(wo.Status, wo.Scheduled)
type GetWorkOrderQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetWorkOrderQuery creates a query for work order id.
func NewGetWorkOrderQuery(id kernel.UUID) (GetWorkOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetWorkOrderQuery{}, err
	}
	return GetWorkOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

// ID returns the work order to read.
func (q GetWorkOrderQuery) ID() kernel.UUID {
	return q.id
}

type GetWorkOrderQueryResponse struct {
	ID        kernel.UUID
	Name      string
	Status    workorder.Status
	Scheduled bool
	RouteID   kernel.UUID
	Version   int
}
