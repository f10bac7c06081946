package services_test

import (
	"testing"

	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/require"
)

// fixture is a work order on a three-step route A(1), B(2), C(3).
type fixture struct {
	processes []kernel.UUID
	route     *route.Route
	order     *workorder.WorkOrder
}

func newFixture(t *testing.T, status workorder.Status, scheduled bool) fixture {
	t.Helper()

	processes := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
	rt, err := route.NewRoute("R", []route.StepDefinition{
		{ProcessID: processes[0], Order: 1},
		{ProcessID: processes[1], Order: 2},
		{ProcessID: processes[2], Order: 3},
	})
	require.NoError(t, err)

	wo, err := workorder.RestoreWorkOrder(kernel.NewUUID(), "W", status, scheduled, rt.ID(), 1)
	require.NoError(t, err)

	return fixture{processes: processes, route: rt, order: wo}
}

// newSparseFixture is a scheduled, approved work order on a two-step route
// A(10), B(20), leaving room to insert steps around them.
func newSparseFixture(t *testing.T) fixture {
	t.Helper()

	processes := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	rt, err := route.NewRoute("R", []route.StepDefinition{
		{ProcessID: processes[0], Order: 10},
		{ProcessID: processes[1], Order: 20},
	})
	require.NoError(t, err)

	wo, err := workorder.RestoreWorkOrder(kernel.NewUUID(), "W", workorder.Approved, true, rt.ID(), 1)
	require.NoError(t, err)

	return fixture{processes: processes, route: rt, order: wo}
}

// tasks builds one task per route step with the given statuses, in step order.
func (f fixture) tasks(t *testing.T, statuses ...task.Status) []*task.Task {
	t.Helper()

	steps := f.route.Steps()
	require.Len(t, statuses, len(steps))

	result := make([]*task.Task, 0, len(steps))
	for i, s := range steps {
		stepID := s.ID()
		tk, err := task.RestoreTask(kernel.NewUUID(), f.order.ID(), s.ProcessID(), &stepID, statuses[i])
		require.NoError(t, err)
		result = append(result, tk)
	}
	return result
}

func (f fixture) unboundTask(t *testing.T, processID kernel.UUID, status task.Status) *task.Task {
	t.Helper()

	tk, err := task.RestoreTask(kernel.NewUUID(), f.order.ID(), processID, nil, status)
	require.NoError(t, err)
	return tk
}
