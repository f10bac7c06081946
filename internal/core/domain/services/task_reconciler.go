package services

import (
	"fmt"
	"slices"

	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/errs"
)

// ReconciliationPlan lists the task changes that make a work order's tasks
// mirror its route.
type ReconciliationPlan struct {
	// Obsolete are bound tasks whose route step is no longer part of the route.
	Obsolete []*task.Task
	// Missing are new pending tasks, ascending by step order.
	Missing []*task.Task
}

// IsEmpty reports whether applying the plan would change nothing.
func (p ReconciliationPlan) IsEmpty() bool {
	return len(p.Obsolete) == 0 && len(p.Missing) == 0
}

// TaskReconciler computes how to split a work order into one task per route step.
//
// Key responsibilities:
//   - Finding bound tasks whose step was removed from the route
//   - Creating a pending task for every step that has none
//   - Leaving every other task untouched, so in-progress and completed work survives
//
// Business rules:
//   - Matching is by route step identity, never by process, because a process
//     may occur several times in one route
//   - Unbound tasks (no route step) are neither matched nor deleted
//   - When several tasks are bound to the same step, the most advanced one is
//     kept and the others are treated as obsolete
//
// The reconciler is pure: it only builds a plan. Applying the plan atomically is
// the caller's job. Planning against the result of a previous plan yields an
// empty plan.
type TaskReconciler struct{}

// NewTaskReconciler creates a new TaskReconciler instance.
func NewTaskReconciler() TaskReconciler {
	return TaskReconciler{}
}

// Plan compares tasks with the steps of rt, which must be the route wo is bound to.
//
// Returns:
//   - ReconciliationPlan: tasks to delete and tasks to create
//   - error: if any argument is invalid or does not belong to wo
func (TaskReconciler) Plan(
	wo *workorder.WorkOrder,
	rt *route.Route,
	tasks []*task.Task,
) (ReconciliationPlan, error) {
	if err := validateAggregate(wo, rt, tasks); err != nil {
		return ReconciliationPlan{}, err
	}

	plan := ReconciliationPlan{
		Obsolete: make([]*task.Task, 0),
		Missing:  make([]*task.Task, 0),
	}

	kept := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		if !t.IsBound() {
			continue
		}
		if _, ok := rt.Step(*t.RouteStepID()); !ok {
			plan.Obsolete = append(plan.Obsolete, t)
			continue
		}

		key := t.RouteStepID().String()
		current, dup := kept[key]
		if !dup {
			kept[key] = t
			continue
		}
		if t.Status() > current.Status() {
			kept[key] = t
			t = current
		}
		plan.Obsolete = append(plan.Obsolete, t)
	}

	for _, step := range rt.Steps() {
		if _, ok := kept[step.ID().String()]; ok {
			continue
		}
		t, err := task.NewTask(wo.ID(), step)
		if err != nil {
			return ReconciliationPlan{}, err
		}
		plan.Missing = append(plan.Missing, t)
	}

	return plan, nil
}

// Apply returns tasks with the plan applied: obsolete tasks removed and missing
// tasks appended.
func (p ReconciliationPlan) Apply(tasks []*task.Task) []*task.Task {
	result := slices.DeleteFunc(slices.Clone(tasks), func(t *task.Task) bool {
		return slices.ContainsFunc(p.Obsolete, func(o *task.Task) bool {
			return o.ID().IsEqual(t.ID())
		})
	})
	return append(result, p.Missing...)
}

func validateAggregate(wo *workorder.WorkOrder, rt *route.Route, tasks []*task.Task) error {
	if err := wo.Validate(); err != nil {
		return err
	}
	if err := rt.Validate(); err != nil {
		return err
	}
	if !rt.ID().IsEqual(wo.RouteID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"route",
			fmt.Errorf("route %s is not bound to work order %s", rt.ID(), wo.ID()),
		)
	}
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if !t.WorkOrderID().IsEqual(wo.ID()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"task",
				fmt.Errorf("task %s belongs to another work order", t.ID()),
			)
		}
	}
	return nil
}
