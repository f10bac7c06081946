package queries

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrGetAllProcessesQueryIsNotConstructed = errors.New(
	"GetAllProcessesQuery must be created via NewGetAllProcessesQuery constructor",
)

// GetAllProcessesQuery lists the process catalog ordered by name.
type GetAllProcessesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllProcessesQuery creates the catalog listing query.
func NewGetAllProcessesQuery() GetAllProcessesQuery {
	return GetAllProcessesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllProcessesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllProcessesQueryIsNotConstructed)
}

type GetAllProcessesQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Description string
}
