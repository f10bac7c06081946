// Package ports defines the persistence contracts of the work-order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/process"
)

// ProcessRepository defines the persistence contract for the process catalog.
type ProcessRepository interface {
	// Add persists a new process.
	Add(ctx context.Context, p *process.Process) error

	// Get retrieves a process by its identifier.
	// Returns ObjectNotFoundError when no process has this id.
	Get(ctx context.Context, id kernel.UUID) (*process.Process, error)
}
