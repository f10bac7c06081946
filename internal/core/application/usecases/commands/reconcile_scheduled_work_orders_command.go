package commands

import (
	"errors"

	"mes/internal/pkg/guard"
)

var ErrReconcileScheduledWorkOrdersCommandIsNotConstructed = errors.New(
	"ReconcileScheduledWorkOrdersCommand must be created via NewReconcileScheduledWorkOrdersCommand constructor",
)

// ReconcileScheduledWorkOrdersCommand re-splits every scheduled work order,
// repairing task sets that drifted from their routes.
type ReconcileScheduledWorkOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileScheduledWorkOrdersCommand creates the command run by the reconciliation job.
func NewReconcileScheduledWorkOrdersCommand() ReconcileScheduledWorkOrdersCommand {
	return ReconcileScheduledWorkOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileScheduledWorkOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileScheduledWorkOrdersCommandIsNotConstructed)
}
