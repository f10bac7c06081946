package services_test

import (
	"testing"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"
	"mes/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrderLifecycle_Update(t *testing.T) {
	lifecycle := services.NewWorkOrderLifecycle()

	t.Run("draft to submitted succeeds", func(t *testing.T) {
		f := newFixture(t, workorder.Draft, false)

		change, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldStatus),
			Status: workorder.Submitted,
		})

		require.NoError(t, err)
		assert.Equal(t, workorder.Submitted, f.order.Status())
		assert.False(t, change.Reconcile)
		assert.False(t, change.RouteChanged())
	})

	t.Run("draft accepts any field", func(t *testing.T) {
		f := newFixture(t, workorder.Draft, false)

		change, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldName, workorder.FieldSteps),
			Name:   "W2",
			Steps:  []route.StepDefinition{{ProcessID: f.processes[0], Order: 1}},
		})

		require.NoError(t, err)
		assert.Equal(t, "W2", f.order.Name())
		assert.Len(t, change.RemovedSteps, 2)
		assert.Len(t, f.route.Steps(), 1)
		assert.False(t, change.Reconcile)
	})

	t.Run("submitted order with a non-status field fails", func(t *testing.T) {
		f := newFixture(t, workorder.Submitted, false)

		_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldStatus, workorder.FieldName),
			Status: workorder.Draft,
			Name:   "W2",
		})

		require.ErrorIs(t, err, workorder.ErrSubmittedMustBeRecalled)
		assert.Equal(t, workorder.Submitted, f.order.Status())
		assert.Equal(t, "W", f.order.Name())
	})

	t.Run("approved order with a non-status field fails", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, false)

		_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldSteps),
		})

		require.ErrorIs(t, err, workorder.ErrApprovedMustBeUnapproved)
	})

	t.Run("approved to draft fails before any other rule", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)

		_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldStatus, workorder.FieldName),
			Status: workorder.Draft,
		})

		require.ErrorIs(t, err, workorder.ErrApprovedCannotRevertToDraft)
	})

	t.Run("scheduling an approved order requests reconciliation", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, false)

		change, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields:    workorder.NewFieldSet(workorder.FieldScheduled),
			Scheduled: true,
		})

		require.NoError(t, err)
		assert.True(t, change.Reconcile)
		assert.True(t, f.order.IsScheduled())
	})

	t.Run("approve and schedule in one request", func(t *testing.T) {
		f := newFixture(t, workorder.Submitted, false)

		change, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields:    workorder.NewFieldSet(workorder.FieldStatus, workorder.FieldScheduled),
			Status:    workorder.Approved,
			Scheduled: true,
		})

		require.NoError(t, err)
		assert.True(t, change.Reconcile)
		assert.Equal(t, workorder.Approved, f.order.Status())
	})

	for _, status := range []workorder.Status{workorder.Draft, workorder.Submitted} {
		t.Run("scheduling a "+status.String()+" order fails", func(t *testing.T) {
			f := newFixture(t, status, false)

			_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
				Fields:    workorder.NewFieldSet(workorder.FieldScheduled),
				Scheduled: true,
			})

			require.ErrorIs(t, err, workorder.ErrOnlyApprovedCanBeSplit)
			assert.False(t, f.order.IsScheduled())
		})
	}

	t.Run("scheduled order rejects non-route fields", func(t *testing.T) {
		cases := map[string]services.WorkOrderUpdate{
			"name": {Fields: workorder.NewFieldSet(workorder.FieldName), Name: "W2"},
			"status change": {
				Fields: workorder.NewFieldSet(workorder.FieldStatus),
				Status: workorder.Submitted,
			},
			"unschedule": {Fields: workorder.NewFieldSet(workorder.FieldScheduled), Scheduled: false},
			"route plus name": {
				Fields: workorder.NewFieldSet(workorder.FieldSteps, workorder.FieldName),
				Name:   "W2",
			},
		}
		for name, upd := range cases {
			t.Run(name, func(t *testing.T) {
				f := newFixture(t, workorder.Approved, true)

				_, err := lifecycle.Update(f.order, f.route, nil, upd)

				require.ErrorIs(t, err, workorder.ErrScheduledOnlyRouteEditable)
			})
		}
	})

	t.Run("scheduled order accepts unchanged status and scheduled", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Pending)

		change, err := lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
			Fields:    workorder.NewFieldSet(workorder.FieldStatus, workorder.FieldScheduled),
			Status:    workorder.Approved,
			Scheduled: true,
		})

		require.NoError(t, err)
		assert.True(t, change.Reconcile)
	})

	t.Run("scheduled route edit touching only pending steps succeeds", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Completed, task.Unreported, task.Pending)

		change, err := lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldSteps),
			Steps: []route.StepDefinition{
				{ProcessID: f.processes[0], Order: 1},
				{ProcessID: f.processes[2], Order: 5},
			},
		})

		require.NoError(t, err)
		assert.True(t, change.Reconcile)
		assert.Len(t, change.RemovedSteps, 2)
		assert.Len(t, change.AddedSteps, 1)
		assert.Same(t, f.route, change.Route)
	})

	t.Run("scheduled route edit removing a started step fails", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Completed, task.InProgress, task.Pending)
		before := f.route.Steps()

		_, err := lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldSteps),
			Steps: []route.StepDefinition{
				{ProcessID: f.processes[0], Order: 1},
				{ProcessID: f.processes[2], Order: 3},
			},
		})

		require.ErrorIs(t, err, workorder.ErrScheduledStepIsStarted)
		assert.Equal(t, before, f.route.Steps())
	})

	t.Run("scheduled route edit inserting a step ahead of started work fails", func(t *testing.T) {
		for name, order := range map[string]int{"before the first step": 5, "between started steps": 15} {
			t.Run(name, func(t *testing.T) {
				f := newSparseFixture(t)
				tasks := f.tasks(t, task.Completed, task.InProgress)
				inserted := kernel.NewUUID()

				_, err := lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
					Fields: workorder.NewFieldSet(workorder.FieldSteps),
					Steps: append(f.route.Definitions(),
						route.StepDefinition{ProcessID: inserted, Order: order}),
				})

				require.ErrorIs(t, err, workorder.ErrScheduledStepIsStarted)
				assert.Len(t, f.route.Steps(), 2)
			})
		}
	})

	t.Run("scheduled route edit appending after started work succeeds", func(t *testing.T) {
		f := newSparseFixture(t)
		tasks := f.tasks(t, task.Completed, task.InProgress)

		change, err := lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldSteps),
			Steps: append(f.route.Definitions(),
				route.StepDefinition{ProcessID: kernel.NewUUID(), Order: 30}),
		})

		require.NoError(t, err)
		require.Len(t, change.AddedSteps, 1)
		assert.Equal(t, 30, change.AddedSteps[0].Order())
	})

	t.Run("unbound started tasks block removal of their process", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		legacy := f.unboundTask(t, f.processes[2], task.Completed)

		_, err := lifecycle.Update(f.order, f.route, []*task.Task{legacy}, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldSteps),
			Steps: []route.StepDefinition{
				{ProcessID: f.processes[0], Order: 1},
				{ProcessID: f.processes[1], Order: 2},
			},
		})

		require.ErrorIs(t, err, workorder.ErrScheduledStepIsStarted)
	})

	t.Run("switching route clones the template", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.Pending, task.Pending, task.Pending)
		template, err := route.NewRoute("template", []route.StepDefinition{{ProcessID: f.processes[1], Order: 1}})
		require.NoError(t, err)

		change, err := lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
			Fields:   workorder.NewFieldSet(workorder.FieldRoute),
			Template: template,
		})

		require.NoError(t, err)
		assert.True(t, change.Reconcile)
		assert.Same(t, f.route, change.RetiredRoute)
		assert.False(t, change.Route.ID().IsEqual(template.ID()))
		assert.True(t, change.Route.ID().IsEqual(f.order.RouteID()))
		assert.Equal(t, "W", change.Route.Name())
		assert.Len(t, change.RemovedSteps, 3)
		assert.Len(t, change.AddedSteps, 1)
	})

	t.Run("switching route with any started task fails", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)
		tasks := f.tasks(t, task.InProgress, task.Pending, task.Pending)
		template, err := route.NewRoute("template", nil)
		require.NoError(t, err)

		_, err = lifecycle.Update(f.order, f.route, tasks, services.WorkOrderUpdate{
			Fields:   workorder.NewFieldSet(workorder.FieldRoute),
			Template: template,
		})

		require.ErrorIs(t, err, workorder.ErrScheduledStepIsStarted)
		assert.True(t, f.route.ID().IsEqual(f.order.RouteID()))
	})

	t.Run("route and steps together are invalid", func(t *testing.T) {
		f := newFixture(t, workorder.Draft, false)

		_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldRoute, workorder.FieldSteps),
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("route switch without template is invalid", func(t *testing.T) {
		f := newFixture(t, workorder.Draft, false)

		_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldRoute),
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("failed update leaves the order untouched", func(t *testing.T) {
		f := newFixture(t, workorder.Draft, false)

		_, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{
			Fields: workorder.NewFieldSet(workorder.FieldName, workorder.FieldStatus),
			Name:   "W2",
			Status: workorder.Approved,
		})

		require.Error(t, err)
		assert.Equal(t, "W", f.order.Name())
		assert.Equal(t, workorder.Draft, f.order.Status())
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		f := newFixture(t, workorder.Approved, true)

		change, err := lifecycle.Update(f.order, f.route, nil, services.WorkOrderUpdate{Fields: workorder.NewFieldSet()})

		require.NoError(t, err)
		assert.False(t, change.Reconcile)
		assert.False(t, change.RouteChanged())
	})
}

func TestWorkOrderLifecycle_CheckDelete(t *testing.T) {
	lifecycle := services.NewWorkOrderLifecycle()

	require.NoError(t, lifecycle.CheckDelete(newFixture(t, workorder.Draft, false).order))
	require.NoError(t, lifecycle.CheckDelete(newFixture(t, workorder.Approved, false).order))

	err := lifecycle.CheckDelete(newFixture(t, workorder.Approved, true).order)
	require.ErrorIs(t, err, workorder.ErrScheduledCannotBeDeleted)

	var wo *workorder.WorkOrder
	require.ErrorIs(t, lifecycle.CheckDelete(wo), workorder.ErrWorkOrderIsNotConstructed)
}
