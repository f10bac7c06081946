package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand registers a route template.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	name  string
	steps []route.StepDefinition

	guard guard.ConstructorGuard
}

// NewCreateRouteCommand validates the route name and copies steps. The step
// list itself is checked when the route aggregate is built.
func NewCreateRouteCommand(name string, steps []route.StepDefinition) (CreateRouteCommand, error) {
	cmd := CreateRouteCommand{
		steps: append([]route.StepDefinition(nil), steps...),
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setName(name); err != nil {
		return CreateRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

// Name returns the route name.
func (c CreateRouteCommand) Name() string {
	return c.name
}

// Steps returns a copy of the requested (process, order) pairs.
func (c CreateRouteCommand) Steps() []route.StepDefinition {
	return append([]route.StepDefinition(nil), c.steps...)
}

func (c *CreateRouteCommand) setName(name string) error {
	n, err := kernel.NewName("name", name)
	if err != nil {
		return err
	}

	c.name = n.String()
	return nil
}
