package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mes/internal/adapters/out/metrics"
	postgres_adapter "mes/internal/adapters/out/postgres"
	"mes/internal/adapters/out/postgres/dbtest"
	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/application/usecases/queries"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFunc func() commands.UoW

func (f uowFunc) Create() commands.UoW { return f() }

type processUoWFunc func() commands.ProcessUoW

func (f processUoWFunc) Create() commands.ProcessUoW { return f() }

type routeUoWFunc func() commands.RouteUoW

func (f routeUoWFunc) Create() commands.RouteUoW { return f() }

// api is the full HTTP stack on a private SQLite database.
type api struct {
	e        *echo.Echo
	recorder *metrics.Recorder
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db := dbtest.OpenSQLite(t)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(db)
	uow := uowFunc(func() commands.UoW { return factory.Create() })
	logger := slog.New(slog.DiscardHandler)
	recorder := metrics.NewRecorder()

	server := NewServer(Handlers{
		CreateProcess:     commands.NewCreateProcessCommandHandler(processUoWFunc(func() commands.ProcessUoW { return factory.Create() })),
		CreateRoute:       commands.NewCreateRouteCommandHandler(routeUoWFunc(func() commands.RouteUoW { return factory.Create() })),
		CreateWorkOrder:   commands.NewCreateWorkOrderCommandHandler(uow),
		UpdateWorkOrder:   commands.NewUpdateWorkOrderCommandHandler(uow, recorder, logger),
		SplitWorkOrder:    commands.NewSplitWorkOrderCommandHandler(uow, recorder, logger),
		DeleteWorkOrder:   commands.NewDeleteWorkOrderCommandHandler(uow, recorder, logger),
		UpdateTask:        commands.NewUpdateTaskCommandHandler(uow, recorder, logger),
		GetAllProcesses:   queries.NewGetAllProcessesQueryHandler(db),
		GetRoute:          queries.NewGetRouteQueryHandler(db),
		GetWorkOrder:      queries.NewGetWorkOrderQueryHandler(db),
		GetWorkOrderTasks: queries.NewGetWorkOrderTasksQueryHandler(db),
		GetTask:           queries.NewGetTaskQueryHandler(db),
	}, logger)

	e, err := NewRouter(t.Context(), RouterConfig{
		Server:   server,
		Metrics:  recorder,
		Logger:   logger,
		LogLevel: log.OFF,
	})
	require.NoError(t, err)

	return &api{e: e, recorder: recorder}
}

func (a *api) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// create POSTs body and returns the new id.
func (a *api) create(t *testing.T, path, body string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, BaseURL+path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[createdResponse](t, rec).ID.String()
}

func (a *api) workOrder(t *testing.T, id string) workOrderResponse {
	t.Helper()

	rec := a.do(t, http.MethodGet, BaseURL+"/workorders/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[workOrderResponse](t, rec)
}

func (a *api) tasks(t *testing.T, id string) []taskResponse {
	t.Helper()

	rec := a.do(t, http.MethodGet, BaseURL+"/workorders/"+id+"/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[[]taskResponse](t, rec)
}

// seedWorkOrder creates processes A, B, C, a route over them and a draft work order.
func (a *api) seedWorkOrder(t *testing.T) (routeID, workOrderID string) {
	t.Helper()

	ids := make([]string, 0, 3)
	for _, name := range []string{"A", "B", "C"} {
		ids = append(ids, a.create(t, "/processes", `{"name":"`+name+`"}`))
	}
	routeID = a.create(t, "/routes", `{"name":"R","steps":[`+
		`{"process_id":"`+ids[2]+`","order":3},`+
		`{"process_id":"`+ids[0]+`","order":1},`+
		`{"process_id":"`+ids[1]+`","order":2}]}`)
	workOrderID = a.create(t, "/workorders", `{"name":"W","route_id":"`+routeID+`"}`)
	return routeID, workOrderID
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()

	require.Equal(t, code, rec.Code, rec.Body.String())
	assert.Equal(t, msg, decodeBody[errorResponse](t, rec).Error)
}

func TestServer_WorkOrderFlow(t *testing.T) {
	a := newAPI(t)
	templateID, id := a.seedWorkOrder(t)

	rec := a.do(t, http.MethodGet, BaseURL+"/processes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]processResponse](t, rec), 3)

	rec = a.do(t, http.MethodGet, BaseURL+"/routes/"+templateID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	template := decodeBody[routeResponse](t, rec)
	require.Len(t, template.Steps, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{
		template.Steps[0].ProcessName, template.Steps[1].ProcessName, template.Steps[2].ProcessName,
	})

	wo := a.workOrder(t, id)
	assert.Equal(t, "draft", wo.Status)
	assert.False(t, wo.Scheduled)
	assert.NotEqual(t, templateID, wo.RouteID.String())

	rec = a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"status":"submitted"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "submitted", decodeBody[workOrderResponse](t, rec).Status)

	rec = a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"name":"X"}`)
	assertError(t, rec, http.StatusBadRequest, workorder.ErrSubmittedMustBeRecalled.Reason)

	rec = a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"status":"approved"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodPost, BaseURL+"/workorders/"+id+"/split", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[workOrderResponse](t, rec).Scheduled)

	tasks := a.tasks(t, id)
	require.Len(t, tasks, 3)
	for i, tk := range tasks {
		assert.Equal(t, "pending", tk.Status)
		require.NotNil(t, tk.StepOrder)
		assert.Equal(t, i+1, *tk.StepOrder)
	}

	rec = a.do(t, http.MethodPatch, BaseURL+"/tasks/"+tasks[1].ID.String(), `{"status":"in_progress"}`)
	assertError(t, rec, http.StatusBadRequest, services.ErrPrecedingStepsNotCompleted.Reason)

	rec = a.do(t, http.MethodPatch, BaseURL+"/tasks/"+tasks[0].ID.String(), `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[taskResponse](t, rec)
	assert.Equal(t, "in_progress", updated.Status)
	require.NotNil(t, updated.WorkOrderID)
	assert.Equal(t, id, updated.WorkOrderID.String())

	rec = a.do(t, http.MethodGet, BaseURL+"/tasks/"+tasks[0].ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "in_progress", decodeBody[taskResponse](t, rec).Status)

	rec = a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"name":"Y"}`)
	assertError(t, rec, http.StatusBadRequest, workorder.ErrScheduledOnlyRouteEditable.Reason)

	rec = a.do(t, http.MethodDelete, BaseURL+"/workorders/"+id, "")
	assertError(t, rec, http.StatusBadRequest, workorder.ErrScheduledCannotBeDeleted.Reason)
}

func TestServer_ScheduledAlias(t *testing.T) {
	a := newAPI(t)
	_, id := a.seedWorkOrder(t)
	for _, s := range []string{"submitted", "approved"} {
		rec := a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"status":"`+s+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"status":"scheduled"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	wo := decodeBody[workOrderResponse](t, rec)
	assert.Equal(t, "approved", wo.Status)
	assert.True(t, wo.Scheduled)
	assert.Len(t, a.tasks(t, id), 3)
}

func TestServer_Errors(t *testing.T) {
	a := newAPI(t)
	_, id := a.seedWorkOrder(t)

	t.Run("draft cannot be split", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, BaseURL+"/workorders/"+id+"/split", "")

		assertError(t, rec, http.StatusBadRequest, workorder.ErrOnlyApprovedCanBeSplit.Reason)
	})

	t.Run("scheduling a draft through the alias is rejected", func(t *testing.T) {
		rec := a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"status":"scheduled"}`)

		assertError(t, rec, http.StatusBadRequest, workorder.ErrOnlyApprovedCanBeSplit.Reason)
	})

	t.Run("unknown work order is 404", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, BaseURL+"/workorders/00000000-0000-4000-8000-000000000001", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, BaseURL+"/workorders/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown patch field is 400", func(t *testing.T) {
		rec := a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id, `{"priority":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "draft", a.workOrder(t, id).Status)
	})

	t.Run("contract violations are 400", func(t *testing.T) {
		rec := a.do(t, http.MethodPost, BaseURL+"/processes", `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = a.do(t, http.MethodPatch, BaseURL+"/tasks/"+id, `{"status":"done"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("route and steps together are 400", func(t *testing.T) {
		wo := a.workOrder(t, id)

		rec := a.do(t, http.MethodPatch, BaseURL+"/workorders/"+id,
			`{"route_id":"`+wo.RouteID.String()+`","steps":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("draft can be deleted", func(t *testing.T) {
		rec := a.do(t, http.MethodDelete, BaseURL+"/workorders/"+id, "")
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = a.do(t, http.MethodGet, BaseURL+"/workorders/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_Operational(t *testing.T) {
	a := newAPI(t)

	t.Run("health", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("metrics include request latency", func(t *testing.T) {
		a.do(t, http.MethodGet, BaseURL+"/processes", "")

		rec := a.do(t, http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "mes_http_request_duration_seconds")
		assert.Contains(t, rec.Body.String(), `route="/api/v1/processes"`)
	})

	t.Run("swagger serves the contract", func(t *testing.T) {
		rec := a.do(t, http.MethodGet, "/swagger/doc.json", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Manufacturing Execution Service")
	})
}
