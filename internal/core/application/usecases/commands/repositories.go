// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mes/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProcessRepoFactory interface {
		ProcessRepository() ports.ProcessRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// ProcessUoW manages transactions for catalog-only operations.
	ProcessUoW interface {
		TxManager
		ProcessRepoFactory
	}

	ProcessUoWFactory interface {
		Create() ProcessUoW
	}

	// RouteUoW manages transactions for route templates, which reference processes.
	RouteUoW interface {
		TxManager
		ProcessRepoFactory
		RouteRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// UoW manages transactions across a work order, its route and its tasks.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   wo, err := uow.WorkOrderRepository().GetForUpdate(ctx, id)
	//   rt, err := uow.RouteRepository().Get(ctx, wo.RouteID())
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ProcessRepoFactory
		RouteRepoFactory
		WorkOrderRepoFactory
		TaskRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
