package workorder

import (
	"errors"
	"fmt"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/pkg/errs"
)

var (
	// ErrWorkOrderIsNotConstructed is returned when a WorkOrder was not created through
	// NewWorkOrder or RestoreWorkOrder.
	ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")
)

// WorkOrder is the aggregate root for one unit of production work bound to one route.
//
// WorkOrder follows these invariants:
//   - Must have a valid identifier, a name and a route
//   - Status is one of Draft, Submitted, Approved
//   - Only an Approved order can be scheduled, and scheduling is permanent
//   - A scheduled order keeps its status; only its route may still change
//
// version counts persisted revisions and is used for optimistic locking by the
// storage layer; domain methods never change it.
type WorkOrder struct {
	id        kernel.UUID
	name      kernel.Name
	status    Status
	scheduled bool
	routeID   kernel.UUID
	version   int

	isConstructed bool
}

// NewWorkOrder creates a draft, unscheduled work order bound to routeID.
//
// Example:
//
//	private, _ := template.Clone("WO-2024-001")
//	wo, err := workorder.NewWorkOrder("WO-2024-001", private.ID())
func NewWorkOrder(name string, routeID kernel.UUID) (*WorkOrder, error) {
	return RestoreWorkOrder(kernel.NewUUID(), name, Draft, false, routeID, 1)
}

// RestoreWorkOrder rebuilds a work order from persisted state.
func RestoreWorkOrder(
	id kernel.UUID,
	name string,
	status Status,
	scheduled bool,
	routeID kernel.UUID,
	version int,
) (*WorkOrder, error) {
	wo := &WorkOrder{
		scheduled:     scheduled,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		wo.setID(id),
		wo.Rename(name),
		wo.setStatus(status),
		wo.BindRoute(routeID),
	); err != nil {
		return nil, err
	}

	if scheduled && status != Approved {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"scheduled",
			fmt.Errorf("a %s work order cannot be scheduled", status),
		)
	}

	return wo, nil
}

// Validate ensures the WorkOrder was built by one of its constructors.
func (wo *WorkOrder) Validate() error {
	if wo == nil || !wo.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

func (wo *WorkOrder) ID() kernel.UUID {
	return wo.id
}

func (wo *WorkOrder) Name() string {
	return wo.name.String()
}

func (wo *WorkOrder) Status() Status {
	return wo.status
}

// IsScheduled reports whether the order has been split into tasks.
func (wo *WorkOrder) IsScheduled() bool {
	return wo.scheduled
}

func (wo *WorkOrder) RouteID() kernel.UUID {
	return wo.routeID
}

func (wo *WorkOrder) Version() int {
	return wo.version
}

// Rename replaces the work order name after validating it.
func (wo *WorkOrder) Rename(name string) error {
	n, err := kernel.NewName("name", name)
	if err != nil {
		return err
	}
	wo.name = n
	return nil
}

// ChangeStatus moves the order to target following the Status transition table.
// A scheduled order keeps its status.
func (wo *WorkOrder) ChangeStatus(target Status) error {
	if wo.scheduled && target != wo.status {
		return ErrScheduledOnlyRouteEditable
	}

	next, err := wo.status.TransitionTo(target)
	if err != nil {
		return err
	}
	wo.status = next
	return nil
}

// Schedule marks an approved order as scheduled. Scheduling an already
// scheduled order is a no-op.
func (wo *WorkOrder) Schedule() error {
	if wo.status != Approved {
		return ErrOnlyApprovedCanBeSplit
	}
	wo.scheduled = true
	return nil
}

// BindRoute points the order at routeID.
func (wo *WorkOrder) BindRoute(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("route", err)
	}
	wo.routeID = routeID
	return nil
}

// CanBeDeleted returns ErrScheduledCannotBeDeleted for scheduled orders.
func (wo *WorkOrder) CanBeDeleted() error {
	if wo.scheduled {
		return ErrScheduledCannotBeDeleted
	}
	return nil
}

func (wo *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	wo.id = id
	return nil
}

func (wo *WorkOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	wo.status = status
	return nil
}
