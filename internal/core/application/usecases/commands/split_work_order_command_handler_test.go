package commands_test

import (
	"context"
	"errors"
	"testing"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"
	"mes/internal/core/ports"
	"mes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWorkOrder_EndToEnd(t *testing.T) {
	e := newEnv(t)
	ctx := t.Context()
	id := e.approvedWorkOrder(t, "W")

	require.NoError(t, e.split(ctx, id))

	wo := e.workOrder(t, id)
	assert.True(t, wo.IsScheduled())
	assert.Equal(t, workorder.Approved, wo.Status())

	tasks := e.tasks(t, id)
	require.Len(t, tasks, 3)
	rt := e.route(t, wo.RouteID())
	for i, s := range rt.Steps() {
		assert.Equal(t, task.Pending, tasks[i].Status())
		assert.True(t, tasks[i].IsBoundTo(s.ID()))
		assert.True(t, e.processes[i].IsEqual(tasks[i].ProcessID()))
	}
	assert.Equal(t, 1, e.recorder.splits)
	assert.Equal(t, 3, e.recorder.created)

	t.Run("scheduling again changes nothing", func(t *testing.T) {
		require.NoError(t, e.update(ctx, id, commands.WorkOrderPatch{Scheduled: ptr(true)}))
		require.NoError(t, e.split(ctx, id))

		again := e.tasks(t, id)
		require.Len(t, again, 3)
		for i := range tasks {
			assert.True(t, tasks[i].ID().IsEqual(again[i].ID()))
		}
	})

	t.Run("tasks advance left to right", func(t *testing.T) {
		t1, t2 := tasks[0].ID(), tasks[1].ID()

		require.ErrorIs(t, e.updateTask(ctx, t2, task.InProgress), services.ErrPrecedingStepsNotCompleted)
		require.NoError(t, e.updateTask(ctx, t1, task.Completed))
		require.NoError(t, e.updateTask(ctx, t2, task.InProgress))

		require.ErrorIs(t, e.updateTask(ctx, t1, task.Pending), services.ErrTaskIsLocked)
		require.ErrorIs(t, e.updateTask(ctx, t2, task.Completed), services.ErrTaskIsLocked)

		current := e.tasks(t, id)
		assert.Equal(t, task.Completed, current[0].Status())
		assert.Equal(t, task.InProgress, current[1].Status())
		assert.Equal(t, task.Pending, current[2].Status())
		assert.Equal(t, 3, e.recorder.rejections["update_task"])
	})

	t.Run("a scheduled order only accepts route edits", func(t *testing.T) {
		err := e.update(ctx, id, commands.WorkOrderPatch{Name: ptr("renamed")})

		require.ErrorIs(t, err, workorder.ErrScheduledOnlyRouteEditable)
		assert.Equal(t, "W", e.workOrder(t, id).Name())
		assert.Equal(t, 1, e.recorder.rejections["update_work_order"])
	})

	t.Run("a scheduled order cannot be deleted", func(t *testing.T) {
		cmd, err := commands.NewDeleteWorkOrderCommand(id)
		require.NoError(t, err)

		err = commands.NewDeleteWorkOrderCommandHandler(e.uowFactory(), e.recorder, nil).Handle(ctx, cmd)

		require.ErrorIs(t, err, workorder.ErrScheduledCannotBeDeleted)
		assert.True(t, e.workOrder(t, id).IsScheduled())
	})
}

func TestSplitWorkOrder_Rejected(t *testing.T) {
	t.Run("draft order", func(t *testing.T) {
		e := newEnv(t)
		id := e.createWorkOrder(t, "W")

		err := e.split(t.Context(), id)

		require.ErrorIs(t, err, workorder.ErrOnlyApprovedCanBeSplit)
		assert.False(t, e.workOrder(t, id).IsScheduled())
		assert.Empty(t, e.tasks(t, id))
	})

	t.Run("unknown order", func(t *testing.T) {
		e := newEnv(t)

		err := e.split(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("invalid command", func(t *testing.T) {
		_, err := commands.NewSplitWorkOrderCommand(kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

// brokenTasks fails every insert.
type brokenTasks struct {
	ports.TaskRepository
}

func (brokenTasks) Add(_ context.Context, _ ...*task.Task) error {
	return errors.New("disk is full")
}

type brokenTasksUoW struct {
	ports.UnitOfWork
}

func (u brokenTasksUoW) TaskRepository() ports.TaskRepository {
	return brokenTasks{u.UnitOfWork.TaskRepository()}
}

func TestSplitWorkOrder_FailureRollsBack(t *testing.T) {
	e := newEnv(t)
	id := e.approvedWorkOrder(t, "W")
	factory := funcUoWFactory(func() ports.UnitOfWork {
		return brokenTasksUoW{e.factory.Create()}
	})
	cmd, err := commands.NewSplitWorkOrderCommand(id)
	require.NoError(t, err)

	err = commands.NewSplitWorkOrderCommandHandler(factory, e.recorder, nil).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrInternal)
	var internal *errs.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, workorder.SplitFailedMessage, internal.Message)
	assert.False(t, e.workOrder(t, id).IsScheduled())
	assert.Empty(t, e.tasks(t, id))
	assert.Equal(t, 1, e.recorder.failures)
	assert.Zero(t, e.recorder.splits)
}
