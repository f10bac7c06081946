package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrSplitWorkOrderCommandIsNotConstructed = errors.New(
	"SplitWorkOrderCommand must be created via NewSplitWorkOrderCommand constructor",
)

// SplitWorkOrderCommand generates the tasks of an approved work order from its
// route and marks it scheduled.
type SplitWorkOrderCommand struct { //nolint:recvcheck //using for validation
	id kernel.UUID

	guard guard.ConstructorGuard
}

// NewSplitWorkOrderCommand creates a command to split the work order id.
func NewSplitWorkOrderCommand(id kernel.UUID) (SplitWorkOrderCommand, error) {
	if err := id.Validate(); err != nil {
		return SplitWorkOrderCommand{}, err
	}

	return SplitWorkOrderCommand{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrSplitWorkOrderCommandIsNotConstructed)
}

// ID returns the work order to split.
func (c SplitWorkOrderCommand) ID() kernel.UUID {
	return c.id
}
