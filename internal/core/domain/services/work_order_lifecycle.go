package services

import (
	"errors"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/errs"
)

// WorkOrderUpdate is a partial update of a work order. Only the values of
// fields named in Fields are read.
type WorkOrderUpdate struct {
	Fields    workorder.FieldSet
	Name      string
	Status    workorder.Status
	Scheduled bool
	// Template is the route to copy when Fields has FieldRoute.
	Template *route.Route
	// Steps is the new step list when Fields has FieldSteps.
	Steps []route.StepDefinition
}

// WorkOrderChange describes what an accepted update did to the aggregate.
type WorkOrderChange struct {
	// Route is the route the work order is bound to after the update.
	Route *route.Route
	// RetiredRoute is the previous private route when the order switched routes.
	RetiredRoute *route.Route
	RemovedSteps []*route.Step
	AddedSteps   []*route.Step
	// Reconcile is set when tasks must be re-split from Route before persisting.
	Reconcile bool
}

// RouteChanged reports whether the route or its step list was modified.
func (c WorkOrderChange) RouteChanged() bool {
	return c.RetiredRoute != nil || len(c.RemovedSteps) > 0 || len(c.AddedSteps) > 0
}

// WorkOrderLifecycle decides which updates a work order accepts in its current state.
//
// Rules, evaluated in this order:
//  1. Approved -> Draft is rejected
//  2. A scheduled order accepts only route changes, plus status and scheduled
//     repeated with their current values
//  3. A route change on a scheduled order may only remove steps whose tasks
//     (matched by route step, or by process for unbound tasks) are pending or unreported,
//     and may not insert a step ahead of the last started one
//  4. A submitted order accepts only status changes
//  5. An approved order accepts only status changes and scheduling
//  6. Scheduling requires the resulting status to be Approved and triggers reconciliation
//  7. Anything else is applied as requested
//
// Update mutates wo and rt only after the whole update has been checked.
type WorkOrderLifecycle struct{}

// NewWorkOrderLifecycle creates a new WorkOrderLifecycle instance.
func NewWorkOrderLifecycle() WorkOrderLifecycle {
	return WorkOrderLifecycle{}
}

// Update validates upd against wo's state and applies it.
//
// Parameters:
//   - wo: the work order being updated
//   - rt: the route wo is currently bound to
//   - tasks: the current tasks of wo
//   - upd: the requested change
//
// Returns the resulting WorkOrderChange, or a RuleIsViolatedError naming the
// first rule that rejected the update.
func (l WorkOrderLifecycle) Update(
	wo *workorder.WorkOrder,
	rt *route.Route,
	tasks []*task.Task,
	upd WorkOrderUpdate,
) (WorkOrderChange, error) {
	if err := validateAggregate(wo, rt, tasks); err != nil {
		return WorkOrderChange{}, err
	}
	if err := validateUpdate(upd); err != nil {
		return WorkOrderChange{}, err
	}
	fields := upd.Fields

	if fields.Has(workorder.FieldStatus) && wo.Status() == workorder.Approved && upd.Status == workorder.Draft {
		return WorkOrderChange{}, workorder.ErrApprovedCannotRevertToDraft
	}

	if wo.IsScheduled() {
		if err := l.checkScheduled(wo, rt, tasks, upd); err != nil {
			return WorkOrderChange{}, err
		}
	} else {
		switch {
		case wo.Status() == workorder.Submitted && !fields.Only(workorder.FieldStatus, workorder.FieldScheduled):
			return WorkOrderChange{}, workorder.ErrSubmittedMustBeRecalled
		case wo.Status() == workorder.Approved && !fields.Only(workorder.FieldStatus, workorder.FieldScheduled):
			return WorkOrderChange{}, workorder.ErrApprovedMustBeUnapproved
		}
	}

	return l.apply(wo, rt, upd)
}

// CheckDelete returns an error if wo may not be deleted.
func (WorkOrderLifecycle) CheckDelete(wo *workorder.WorkOrder) error {
	if err := wo.Validate(); err != nil {
		return err
	}
	return wo.CanBeDeleted()
}

func (WorkOrderLifecycle) checkScheduled(
	wo *workorder.WorkOrder,
	rt *route.Route,
	tasks []*task.Task,
	upd WorkOrderUpdate,
) error {
	for f := range upd.Fields {
		switch f {
		case workorder.FieldRoute, workorder.FieldSteps:
		case workorder.FieldStatus:
			if upd.Status != wo.Status() {
				return workorder.ErrScheduledOnlyRouteEditable
			}
		case workorder.FieldScheduled:
			if !upd.Scheduled {
				return workorder.ErrScheduledOnlyRouteEditable
			}
		default:
			return workorder.ErrScheduledOnlyRouteEditable
		}
	}

	var removed []*route.Step
	switch {
	case upd.Fields.Has(workorder.FieldRoute):
		removed = rt.Steps()
	case upd.Fields.Has(workorder.FieldSteps):
		removed = rt.StepsRemovedBy(upd.Steps)
	}

	for _, step := range removed {
		for _, t := range tasks {
			matched := t.IsBoundTo(step.ID()) || (!t.IsBound() && t.ProcessID().IsEqual(step.ProcessID()))
			if matched && t.Status().IsStarted() {
				return workorder.ErrScheduledStepIsStarted
			}
		}
	}

	if upd.Fields.Has(workorder.FieldSteps) {
		if last, ok := lastStartedOrder(rt, tasks); ok {
			for _, d := range rt.DefinitionsAddedBy(upd.Steps) {
				if d.Order < last {
					return workorder.ErrScheduledStepIsStarted
				}
			}
		}
	}
	return nil
}

// lastStartedOrder returns the highest step order of rt that carries a started
// task. A pending step inserted below it could never be started or passed.
func lastStartedOrder(rt *route.Route, tasks []*task.Task) (int, bool) {
	last, found := 0, false
	for _, step := range rt.Steps() {
		for _, t := range tasks {
			if t.IsBoundTo(step.ID()) && t.Status().IsStarted() {
				last, found = step.Order(), true
			}
		}
	}
	return last, found
}

func (WorkOrderLifecycle) apply(wo *workorder.WorkOrder, rt *route.Route, upd WorkOrderUpdate) (WorkOrderChange, error) {
	fields := upd.Fields

	if fields.Has(workorder.FieldName) {
		if _, err := kernel.NewName("name", upd.Name); err != nil {
			return WorkOrderChange{}, err
		}
	}
	nextStatus := wo.Status()
	if fields.Has(workorder.FieldStatus) {
		next, err := wo.Status().TransitionTo(upd.Status)
		if err != nil {
			return WorkOrderChange{}, err
		}
		nextStatus = next
	}
	schedule := fields.Has(workorder.FieldScheduled) && upd.Scheduled
	if schedule && nextStatus != workorder.Approved {
		return WorkOrderChange{}, workorder.ErrOnlyApprovedCanBeSplit
	}

	change := WorkOrderChange{Route: rt, Reconcile: schedule}
	switch {
	case fields.Has(workorder.FieldRoute):
		name := wo.Name()
		if fields.Has(workorder.FieldName) {
			name = upd.Name
		}
		clone, err := upd.Template.Clone(name)
		if err != nil {
			return WorkOrderChange{}, err
		}
		change.Route = clone
		change.RetiredRoute = rt
		change.RemovedSteps = rt.Steps()
		change.AddedSteps = clone.Steps()
	case fields.Has(workorder.FieldSteps):
		removed, added, err := rt.ReplaceSteps(upd.Steps)
		if err != nil {
			return WorkOrderChange{}, err
		}
		change.RemovedSteps = removed
		change.AddedSteps = added
	}

	// Nothing below can fail: every value was checked above.
	if err := errors.Join(
		renameIf(wo, fields, upd.Name),
		changeStatusIf(wo, fields, nextStatus),
		wo.BindRoute(change.Route.ID()),
	); err != nil {
		return WorkOrderChange{}, err
	}
	if schedule {
		if err := wo.Schedule(); err != nil {
			return WorkOrderChange{}, err
		}
	}

	if wo.IsScheduled() && fields.TouchesRoute() {
		change.Reconcile = true
	}

	return change, nil
}

func renameIf(wo *workorder.WorkOrder, fields workorder.FieldSet, name string) error {
	if !fields.Has(workorder.FieldName) {
		return nil
	}
	return wo.Rename(name)
}

func changeStatusIf(wo *workorder.WorkOrder, fields workorder.FieldSet, status workorder.Status) error {
	if !fields.Has(workorder.FieldStatus) {
		return nil
	}
	return wo.ChangeStatus(status)
}

func validateUpdate(upd WorkOrderUpdate) error {
	fields := upd.Fields
	if fields.Has(workorder.FieldRoute) && fields.Has(workorder.FieldSteps) {
		return errs.NewValueIsInvalidErrorWithCause(
			"steps",
			errors.New("route_id and steps cannot be changed in the same request"),
		)
	}
	if fields.Has(workorder.FieldRoute) {
		if err := upd.Template.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("route_id", err)
		}
	}
	if fields.Has(workorder.FieldStatus) {
		if err := upd.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}
