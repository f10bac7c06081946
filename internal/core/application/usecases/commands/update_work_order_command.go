package commands

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/guard"
)

var ErrUpdateWorkOrderCommandIsNotConstructed = errors.New(
	"UpdateWorkOrderCommand must be created via NewUpdateWorkOrderCommand constructor",
)

// WorkOrderPatch carries the fields present in a partial update request.
// A nil field was not sent; Steps pointing at an empty slice clears the route.
type WorkOrderPatch struct {
	Name      *string
	Status    *workorder.Status
	Scheduled *bool
	RouteID   *kernel.UUID
	Steps     *[]route.StepDefinition
}

// UpdateWorkOrderCommand is a partial update of a work order. The lifecycle
// rules reason over Fields, the set of names that were present, not over values.
//
// Example:
//
//	status := workorder.Submitted
//	cmd, err := NewUpdateWorkOrderCommand(id, WorkOrderPatch{Status: &status})
type UpdateWorkOrderCommand struct { //nolint:recvcheck //using for validation
	id        kernel.UUID
	fields    workorder.FieldSet
	name      string
	status    workorder.Status
	scheduled bool
	routeID   kernel.UUID
	steps     []route.StepDefinition

	guard guard.ConstructorGuard
}

// NewUpdateWorkOrderCommand validates the values in patch and records which
// fields it sets. Whether the fields may change together is left to the lifecycle.
func NewUpdateWorkOrderCommand(id kernel.UUID, patch WorkOrderPatch) (UpdateWorkOrderCommand, error) {
	cmd := UpdateWorkOrderCommand{
		fields: workorder.NewFieldSet(),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setName(patch.Name),
		cmd.setStatus(patch.Status),
		cmd.setRouteID(patch.RouteID),
	); err != nil {
		return UpdateWorkOrderCommand{}, err
	}

	if patch.Scheduled != nil {
		cmd.fields[workorder.FieldScheduled] = struct{}{}
		cmd.scheduled = *patch.Scheduled
	}
	if patch.Steps != nil {
		cmd.fields[workorder.FieldSteps] = struct{}{}
		cmd.steps = append([]route.StepDefinition{}, *patch.Steps...)
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkOrderCommandIsNotConstructed)
}

// ID returns the work order to update.
func (c UpdateWorkOrderCommand) ID() kernel.UUID {
	return c.id
}

// Fields returns the names present in the request.
func (c UpdateWorkOrderCommand) Fields() workorder.FieldSet {
	fields := workorder.NewFieldSet()
	for f := range c.fields {
		fields[f] = struct{}{}
	}
	return fields
}

// Name returns the requested name; meaningful only when the name field is set.
func (c UpdateWorkOrderCommand) Name() string {
	return c.name
}

// Status returns the requested status.
func (c UpdateWorkOrderCommand) Status() workorder.Status {
	return c.status
}

// Scheduled returns the requested scheduled flag.
func (c UpdateWorkOrderCommand) Scheduled() bool {
	return c.scheduled
}

// RouteID is the template to switch to when Fields has FieldRoute.
func (c UpdateWorkOrderCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Steps returns a copy of the requested step list.
func (c UpdateWorkOrderCommand) Steps() []route.StepDefinition {
	return append([]route.StepDefinition{}, c.steps...)
}

func (c *UpdateWorkOrderCommand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *UpdateWorkOrderCommand) setName(name *string) error {
	if name == nil {
		return nil
	}

	n, err := kernel.NewName("name", *name)
	if err != nil {
		return err
	}

	c.fields[workorder.FieldName] = struct{}{}
	c.name = n.String()
	return nil
}

func (c *UpdateWorkOrderCommand) setStatus(status *workorder.Status) error {
	if status == nil {
		return nil
	}

	if err := status.Validate(); err != nil {
		return err
	}

	c.fields[workorder.FieldStatus] = struct{}{}
	c.status = *status
	return nil
}

func (c *UpdateWorkOrderCommand) setRouteID(routeID *kernel.UUID) error {
	if routeID == nil {
		return nil
	}

	if err := routeID.Validate(); err != nil {
		return err
	}

	c.fields[workorder.FieldRoute] = struct{}{}
	c.routeID = *routeID
	return nil
}
