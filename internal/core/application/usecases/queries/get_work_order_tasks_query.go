package queries

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/pkg/guard"
)

var ErrGetWorkOrderTasksQueryIsNotConstructed = errors.New(
	"GetWorkOrderTasksQuery must be created via NewGetWorkOrderTasksQuery constructor",
)

// GetWorkOrderTasksQuery lists the tasks of a work order in route order.
// Tasks not bound to a step of the order's route come last.
type GetWorkOrderTasksQuery struct {
	workOrderID kernel.UUID
	guard       guard.ConstructorGuard
}

// NewGetWorkOrderTasksQuery creates a query listing the tasks of a work order.
func NewGetWorkOrderTasksQuery(workOrderID kernel.UUID) (GetWorkOrderTasksQuery, error) {
	if err := workOrderID.Validate(); err != nil {
		return GetWorkOrderTasksQuery{}, err
	}
	return GetWorkOrderTasksQuery{workOrderID: workOrderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetWorkOrderTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderTasksQueryIsNotConstructed)
}

// WorkOrderID returns the work order whose tasks are listed.
func (q GetWorkOrderTasksQuery) WorkOrderID() kernel.UUID {
	return q.workOrderID
}

type GetWorkOrderTasksQueryResponse struct {
	ID          kernel.UUID
	ProcessID   kernel.UUID
	ProcessName string
	// RouteStepID is nil for unbound tasks.
	RouteStepID *kernel.UUID
	// StepOrder is nil unless the task is bound to a step of the order's route.
	StepOrder *int
	Status      task.Status
}
