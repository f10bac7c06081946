package queries

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/pkg/guard"
)

var ErrGetTaskQueryIsNotConstructed = errors.New(
	"GetTaskQuery must be created via NewGetTaskQuery constructor",
)

type GetTaskQuery struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetTaskQuery creates a query for task id.
func NewGetTaskQuery(id kernel.UUID) (GetTaskQuery, error) {
	if err := id.Validate(); err != nil {
		return GetTaskQuery{}, err
	}
	return GetTaskQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTaskQuery) Validate() error {
	return q.guard.Validate(ErrGetTaskQueryIsNotConstructed)
}

// ID returns the task to read.
func (q GetTaskQuery) ID() kernel.UUID {
	return q.id
}

type GetTaskQueryResponse struct {
	ID          kernel.UUID
	WorkOrderID kernel.UUID
	ProcessID   kernel.UUID
	ProcessName string
	RouteStepID *kernel.UUID
	// StepOrder is nil unless the task is bound to a step of its work order's route.
	StepOrder *int
	Status    task.Status
}
