package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command so concurrent
// requests never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans one work-order change: the order, its route and its tasks
// are read and written inside a single transaction.
//
// Repositories returned before Begin run outside any transaction, which the
// query side relies on.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback fails after Commit; deferred calls ignore that error.
	Rollback(ctx context.Context) error

	ProcessRepository() ProcessRepository
	RouteRepository() RouteRepository
	WorkOrderRepository() WorkOrderRepository
	TaskRepository() TaskRepository
}
