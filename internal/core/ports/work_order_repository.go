package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work-order aggregates.
//
// Every mutating use case loads the order through GetForUpdate so that two
// requests touching the same order, its route or its tasks are serialized.
// Update is additionally guarded by the version the order was loaded with.
type WorkOrderRepository interface {
	// Add persists a new work order.
	Add(ctx context.Context, wo *workorder.WorkOrder) error

	// Update persists a modified work order if its stored version still matches
	// wo.Version(). Returns VersionIsInvalidError otherwise.
	Update(ctx context.Context, wo *workorder.WorkOrder) error

	// Get retrieves a work order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetForUpdate retrieves a work order and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// Delete removes a work order and, by cascade, its tasks.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllScheduledIDs returns the identifiers of every scheduled work order.
	GetAllScheduledIDs(ctx context.Context) ([]kernel.UUID, error)
}
