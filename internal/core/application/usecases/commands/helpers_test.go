package commands_test

import (
	"context"
	"sync"
	"testing"

	postgres_adapter "mes/internal/adapters/out/postgres"
	"mes/internal/adapters/out/postgres/dbtest"
	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/core/domain/model/task"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type funcUoWFactory func() ports.UnitOfWork

func (f funcUoWFactory) Create() commands.UoW { return f() }

type funcProcessUoWFactory func() ports.UnitOfWork

func (f funcProcessUoWFactory) Create() commands.ProcessUoW { return f() }

type funcRouteUoWFactory func() ports.UnitOfWork

func (f funcRouteUoWFactory) Create() commands.RouteUoW { return f() }

// countingRecorder is a commands.Recorder that remembers what it saw.
type countingRecorder struct {
	mu         sync.Mutex
	splits     int
	created    int
	deleted    int
	failures   int
	rejections map[string]int
}

func (r *countingRecorder) RecordSplit(created, deleted int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.splits++
	r.created += created
	r.deleted += deleted
}

func (r *countingRecorder) RecordSplitFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func (r *countingRecorder) RecordRejection(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejections == nil {
		r.rejections = make(map[string]int)
	}
	r.rejections[operation]++
}

// env is an application wired to a private SQLite database.
type env struct {
	db       *gorm.DB
	factory  *postgres_adapter.GormUnitOfWorkFactory
	recorder *countingRecorder

	processes []kernel.UUID
	template  kernel.UUID
}

// newEnv seeds processes A, B, C and a template route A(1), B(2), C(3).
func newEnv(t *testing.T) *env {
	t.Helper()

	db := dbtest.OpenSQLite(t)
	e := &env{
		db:       db,
		factory:  postgres_adapter.NewGormUnitOfWorkFactory(db),
		recorder: &countingRecorder{},
	}

	for _, name := range []string{"A", "B", "C"} {
		cmd, err := commands.NewCreateProcessCommand(name, "")
		require.NoError(t, err)
		id, err := commands.NewCreateProcessCommandHandler(e.processFactory()).Handle(t.Context(), cmd)
		require.NoError(t, err)
		e.processes = append(e.processes, id)
	}

	e.template = e.createRoute(t, "R", e.definitions(1, 2, 3)...)
	return e
}

func (e *env) uowFactory() commands.UoWFactory {
	return funcUoWFactory(e.factory.Create)
}

func (e *env) processFactory() commands.ProcessUoWFactory {
	return funcProcessUoWFactory(e.factory.Create)
}

func (e *env) routeFactory() commands.RouteUoWFactory {
	return funcRouteUoWFactory(e.factory.Create)
}

// definitions maps orders[i] to processes[i].
func (e *env) definitions(orders ...int) []route.StepDefinition {
	defs := make([]route.StepDefinition, 0, len(orders))
	for i, o := range orders {
		defs = append(defs, route.StepDefinition{ProcessID: e.processes[i], Order: o})
	}
	return defs
}

func (e *env) createRoute(t *testing.T, name string, defs ...route.StepDefinition) kernel.UUID {
	t.Helper()

	cmd, err := commands.NewCreateRouteCommand(name, defs)
	require.NoError(t, err)
	id, err := commands.NewCreateRouteCommandHandler(e.routeFactory()).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func (e *env) createWorkOrder(t *testing.T, name string) kernel.UUID {
	t.Helper()

	cmd, err := commands.NewCreateWorkOrderCommand(name, e.template)
	require.NoError(t, err)
	id, err := commands.NewCreateWorkOrderCommandHandler(e.uowFactory()).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func (e *env) update(ctx context.Context, id kernel.UUID, patch commands.WorkOrderPatch) error {
	cmd, err := commands.NewUpdateWorkOrderCommand(id, patch)
	if err != nil {
		return err
	}
	return commands.NewUpdateWorkOrderCommandHandler(e.uowFactory(), e.recorder, nil).Handle(ctx, cmd)
}

func (e *env) setStatus(t *testing.T, id kernel.UUID, statuses ...workorder.Status) {
	t.Helper()

	for _, s := range statuses {
		require.NoError(t, e.update(t.Context(), id, commands.WorkOrderPatch{Status: &s}))
	}
}

// approvedWorkOrder creates a work order and walks it to approved.
func (e *env) approvedWorkOrder(t *testing.T, name string) kernel.UUID {
	t.Helper()

	id := e.createWorkOrder(t, name)
	e.setStatus(t, id, workorder.Submitted, workorder.Approved)
	return id
}

func (e *env) split(ctx context.Context, id kernel.UUID) error {
	cmd, err := commands.NewSplitWorkOrderCommand(id)
	if err != nil {
		return err
	}
	return commands.NewSplitWorkOrderCommandHandler(e.uowFactory(), e.recorder, nil).Handle(ctx, cmd)
}

func (e *env) updateTask(ctx context.Context, id kernel.UUID, status task.Status) error {
	cmd, err := commands.NewUpdateTaskCommand(id, status)
	if err != nil {
		return err
	}
	return commands.NewUpdateTaskCommandHandler(e.uowFactory(), e.recorder, nil).Handle(ctx, cmd)
}

func (e *env) workOrder(t *testing.T, id kernel.UUID) *workorder.WorkOrder {
	t.Helper()

	wo, err := e.factory.Create().WorkOrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return wo
}

func (e *env) route(t *testing.T, id kernel.UUID) *route.Route {
	t.Helper()

	rt, err := e.factory.Create().RouteRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return rt
}

// tasks returns the tasks of a work order in route order, unbound ones last.
func (e *env) tasks(t *testing.T, id kernel.UUID) []*task.Task {
	t.Helper()

	uow := e.factory.Create()
	wo := e.workOrder(t, id)
	rt := e.route(t, wo.RouteID())
	all, err := uow.TaskRepository().GetByWorkOrder(t.Context(), id)
	require.NoError(t, err)

	ordered := make([]*task.Task, 0, len(all))
	for _, s := range rt.Steps() {
		for _, tk := range all {
			if tk.IsBoundTo(s.ID()) {
				ordered = append(ordered, tk)
			}
		}
	}
	for _, tk := range all {
		if !tk.IsBound() {
			ordered = append(ordered, tk)
		}
	}
	return ordered
}

func ptr[T any](v T) *T {
	return &v
}
