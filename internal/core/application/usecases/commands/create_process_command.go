package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrCreateProcessCommandIsNotConstructed = errors.New(
	"CreateProcessCommand must be created via NewCreateProcessCommand constructor",
)

// CreateProcessCommand registers a new process in the catalog.
type CreateProcessCommand struct { //nolint:recvcheck //using for validation
	name        string
	description string

	guard guard.ConstructorGuard
}

// NewCreateProcessCommand validates the name and builds the command.
// The description may be empty.
func NewCreateProcessCommand(name, description string) (CreateProcessCommand, error) {
	cmd := CreateProcessCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := cmd.setName(name); err != nil {
		return CreateProcessCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProcessCommand) Validate() error {
	return c.guard.Validate(ErrCreateProcessCommandIsNotConstructed)
}

// Name returns the trimmed process name.
func (c CreateProcessCommand) Name() string {
	return c.name
}

// Description returns the free-text description.
func (c CreateProcessCommand) Description() string {
	return c.description
}

func (c *CreateProcessCommand) setName(name string) error {
	n, err := kernel.NewName("name", name)
	if err != nil {
		return err
	}

	c.name = n.String()
	return nil
}
