package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrDeleteWorkOrderCommandIsNotConstructed = errors.New(
	"DeleteWorkOrderCommand must be created via NewDeleteWorkOrderCommand constructor",
)

type DeleteWorkOrderCommand struct { //nolint:recvcheck //using for validation
	id kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteWorkOrderCommand creates a command to delete the work order id.
func NewDeleteWorkOrderCommand(id kernel.UUID) (DeleteWorkOrderCommand, error) {
	if err := id.Validate(); err != nil {
		return DeleteWorkOrderCommand{}, err
	}

	return DeleteWorkOrderCommand{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteWorkOrderCommandIsNotConstructed)
}

// ID returns the work order to delete.
func (c DeleteWorkOrderCommand) ID() kernel.UUID {
	return c.id
}
