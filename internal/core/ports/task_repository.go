package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
)

// TaskRepository defines the persistence contract for tasks.
type TaskRepository interface {
	// Add persists new tasks.
	Add(ctx context.Context, tasks ...*task.Task) error

	// Update persists the status of an existing task.
	Update(ctx context.Context, t *task.Task) error

	// Delete removes tasks.
	Delete(ctx context.Context, tasks ...*task.Task) error

	// Get retrieves a task by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*task.Task, error)

	// GetByWorkOrder returns every task of a work order, bound or not.
	GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*task.Task, error)
}
