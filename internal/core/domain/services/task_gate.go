package services

import (
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/errs"
)

var (
	ErrTaskIsLocked               = errs.NewRuleIsViolatedError("已排产工单中进行中或已完成的任务不可修改。")
	ErrPrecedingStepsNotCompleted = errs.NewRuleIsViolatedError("前序工序必须全部完成。")
	ErrFollowingStepsNotPending   = errs.NewRuleIsViolatedError("后续工序必须均为待处理状态。")
)

// TaskGate decides whether a task's status may change, given the state of the
// tasks bound to the neighbouring steps of the same route.
//
// Business rules:
//   - Unbound tasks, and tasks whose step is not on the order's route, are exempt
//   - On a scheduled order an in-progress or completed task is locked, so a
//     step is reported done by moving it from pending straight to completed
//   - Every task bound to an earlier step must be completed
//   - Every task bound to a later step must still be pending
//
// Together these rules allow a single active position that moves left to right
// along the route.
//
// Example usage:
//
//	gate := services.NewTaskGate()
//	if err := gate.Check(wo, rt, tasks, t, task.InProgress); err != nil {
//	    return err // RuleIsViolatedError with a client-facing reason
//	}
//	_ = t.ChangeStatus(task.InProgress)
type TaskGate struct{}

// NewTaskGate creates a new TaskGate instance.
func NewTaskGate() TaskGate {
	return TaskGate{}
}

// Check returns nil if target may be applied to t.
//
// Parameters:
//   - wo: the work order t belongs to
//   - rt: the route wo is bound to
//   - tasks: all tasks of wo (t may or may not be included)
//   - t: the task being changed
//   - target: the requested status
func (TaskGate) Check(
	wo *workorder.WorkOrder,
	rt *route.Route,
	tasks []*task.Task,
	t *task.Task,
	target task.Status,
) error {
	if err := validateAggregate(wo, rt, append([]*task.Task{t}, tasks...)); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if !t.IsBound() {
		return nil
	}
	step, ok := rt.Step(*t.RouteStepID())
	if !ok {
		return nil
	}

	if wo.IsScheduled() && t.Status().IsStarted() {
		return ErrTaskIsLocked
	}

	for _, s := range rt.StepsBefore(step.Order()) {
		for _, other := range boundTasks(tasks, t, s) {
			if other.Status() != task.Completed {
				return ErrPrecedingStepsNotCompleted
			}
		}
	}

	for _, s := range rt.StepsAfter(step.Order()) {
		for _, other := range boundTasks(tasks, t, s) {
			if other.Status() != task.Pending {
				return ErrFollowingStepsNotPending
			}
		}
	}

	return nil
}

// boundTasks returns the tasks bound to step, excluding self.
func boundTasks(tasks []*task.Task, self *task.Task, step *route.Step) []*task.Task {
	result := make([]*task.Task, 0, 1)
	for _, other := range tasks {
		if other.ID().IsEqual(self.ID()) {
			continue
		}
		if other.IsBoundTo(step.ID()) {
			result = append(result, other)
		}
	}
	return result
}
