package task

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
)

var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask constructor")

// Task tracks the execution of one route step of one work order.
type Task struct {
	id          kernel.UUID
	workOrderID kernel.UUID
	processID   kernel.UUID
	routeStepID *kernel.UUID
	status      Status

	isConstructed bool
}

// NewTask creates a pending task for step of the given work order.
func NewTask(workOrderID kernel.UUID, step *route.Step) (*Task, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}
	stepID := step.ID()
	return RestoreTask(kernel.NewUUID(), workOrderID, step.ProcessID(), &stepID, Pending)
}

// RestoreTask rebuilds a task from persisted state. routeStepID may be nil.
func RestoreTask(
	id, workOrderID, processID kernel.UUID,
	routeStepID *kernel.UUID,
	status Status,
) (*Task, error) {
	t := &Task{isConstructed: true}

	if err := errors.Join(
		t.setID(id),
		workOrderID.Validate(),
		processID.Validate(),
		t.setRouteStepID(routeStepID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	t.workOrderID = workOrderID
	t.processID = processID
	t.status = status

	return t, nil
}

func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

func (t *Task) ID() kernel.UUID {
	return t.id
}

func (t *Task) WorkOrderID() kernel.UUID {
	return t.workOrderID
}

func (t *Task) ProcessID() kernel.UUID {
	return t.processID
}

// RouteStepID returns the bound route step, or nil for unbound tasks.
func (t *Task) RouteStepID() *kernel.UUID {
	if t.routeStepID == nil {
		return nil
	}
	id := *t.routeStepID
	return &id
}

func (t *Task) Status() Status {
	return t.status
}

// IsBound reports whether the task is linked to a route step.
func (t *Task) IsBound() bool {
	return t.routeStepID != nil
}

// IsBoundTo reports whether the task is linked to the step with stepID.
func (t *Task) IsBoundTo(stepID kernel.UUID) bool {
	return t.routeStepID != nil && t.routeStepID.IsEqual(stepID)
}

// ChangeStatus sets the task status. Ordering rules are enforced by the caller.
func (t *Task) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	return nil
}

func (t *Task) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Task) setRouteStepID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	stepID := *id
	t.routeStepID = &stepID
	return nil
}
