package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/pkg/guard"
)

var ErrUpdateTaskCommandIsNotConstructed = errors.New(
	"UpdateTaskCommand must be created via NewUpdateTaskCommand constructor",
)

// UpdateTaskCommand reports progress on a task by changing its status.
type UpdateTaskCommand struct { //nolint:recvcheck //using for validation
	id     kernel.UUID
	status task.Status

	guard guard.ConstructorGuard
}

// NewUpdateTaskCommand creates a command to move task id to status.
// Returns ValueIsInvalidError for a status outside the enum.
func NewUpdateTaskCommand(id kernel.UUID, status task.Status) (UpdateTaskCommand, error) {
	cmd := UpdateTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setStatus(status),
	); err != nil {
		return UpdateTaskCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTaskCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTaskCommandIsNotConstructed)
}

// ID returns the task to change.
func (c UpdateTaskCommand) ID() kernel.UUID {
	return c.id
}

// Status returns the requested status.
func (c UpdateTaskCommand) Status() task.Status {
	return c.status
}

func (c *UpdateTaskCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *UpdateTaskCommand) setStatus(status task.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
