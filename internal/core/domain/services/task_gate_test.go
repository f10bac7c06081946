package services_test

import (
	"testing"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"
	"mes/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestTaskGate_Check(t *testing.T) {
	gate := services.NewTaskGate()

	t.Run("should enforce the left-to-right wavefront", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Pending)
		t1, t2, t3 := tasks[0], tasks[1], tasks[2]

		err := gate.Check(f.order, f.route, tasks, t2, task.InProgress)
		require.ErrorIs(t, err, services.ErrPrecedingStepsNotCompleted)

		require.NoError(t, t1.ChangeStatus(task.Completed))
		require.NoError(t, gate.Check(f.order, f.route, tasks, t2, task.InProgress))

		require.NoError(t, t3.ChangeStatus(task.InProgress))
		err = gate.Check(f.order, f.route, tasks, t2, task.InProgress)
		require.ErrorIs(t, err, services.ErrFollowingStepsNotPending)
	})

	t.Run("should allow the first step when the rest are pending", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Pending)

		require.NoError(t, gate.Check(f.order, f.route, tasks, tasks[0], task.InProgress))
	})

	t.Run("should reject unreported followers", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Unreported)

		err := gate.Check(f.order, f.route, tasks, tasks[0], task.InProgress)

		require.ErrorIs(t, err, services.ErrFollowingStepsNotPending)
	})

	t.Run("should lock started tasks of a scheduled order", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Completed, task.InProgress, task.Pending)

		require.ErrorIs(t, gate.Check(f.order, f.route, tasks, tasks[0], task.Pending), services.ErrTaskIsLocked)
		require.ErrorIs(t, gate.Check(f.order, f.route, tasks, tasks[1], task.Pending), services.ErrTaskIsLocked)
	})

	t.Run("should lock an in-progress task against completion", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Completed, task.InProgress, task.Pending)

		err := gate.Check(f.order, f.route, tasks, tasks[1], task.Completed)

		require.ErrorIs(t, err, services.ErrTaskIsLocked)
	})

	t.Run("should let a pending task be completed directly", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Completed, task.Pending, task.Pending)

		require.NoError(t, gate.Check(f.order, f.route, tasks, tasks[1], task.Completed))
	})

	t.Run("started tasks are not locked before scheduling", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, false)
		tasks := f.tasks(t, task.Completed, task.InProgress, task.Pending)

		require.NoError(t, gate.Check(f.order, f.route, tasks, tasks[1], task.Pending))
	})

	t.Run("should exempt unbound tasks", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.InProgress, task.Pending)
		legacy := f.unboundTask(t, f.processes[2], task.Completed)

		require.NoError(t, gate.Check(f.order, f.route, append(tasks, legacy), legacy, task.Pending))
	})

	t.Run("should exempt tasks bound to a step of another route", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.InProgress, task.Pending)
		stray := kernel.NewUUID()
		orphan, err := task.RestoreTask(kernel.NewUUID(), f.order.ID(), f.processes[0], &stray, task.Pending)
		require.NoError(t, err)

		require.NoError(t, gate.Check(f.order, f.route, tasks, orphan, task.InProgress))
	})

	t.Run("should ignore steps without a task", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Pending)[1:]

		require.NoError(t, gate.Check(f.order, f.route, tasks, tasks[0], task.InProgress))
	})

	t.Run("should reject invalid target status", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Pending)

		err := gate.Check(f.order, f.route, tasks, tasks[0], task.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a task of another order", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		foreign, err := task.RestoreTask(kernel.NewUUID(), kernel.NewUUID(), f.processes[0], nil, task.Pending)
		require.NoError(t, err)

		err = gate.Check(f.order, f.route, nil, foreign, task.InProgress)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
