package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/guard"
)

var ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
	"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
)

// CreateWorkOrderCommand opens a draft work order that follows a copy of a route template.
type CreateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	name    string
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateWorkOrderCommand builds a command to open a draft work order on
// a copy of the route template routeID.
func NewCreateWorkOrderCommand(name string, routeID kernel.UUID) (CreateWorkOrderCommand, error) {
	cmd := CreateWorkOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setRouteID(routeID),
	); err != nil {
		return CreateWorkOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

// Name returns the work-order name, also used for its private route.
func (c CreateWorkOrderCommand) Name() string {
	return c.name
}

// RouteID is the template the work order's private route is copied from.
func (c CreateWorkOrderCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c *CreateWorkOrderCommand) setName(name string) error {
	n, err := kernel.NewName("name", name)
	if err != nil {
		return err
	}

	c.name = n.String()
	return nil
}

func (c *CreateWorkOrderCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}
