package http

import (
	"io"
	"log/slog"
	"net/http"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/application/usecases/queries"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP adapter drives.
type Handlers struct {
	CreateProcess   commands.CreateProcessCommandHandler
	CreateRoute     commands.CreateRouteCommandHandler
	CreateWorkOrder commands.CreateWorkOrderCommandHandler
	UpdateWorkOrder commands.UpdateWorkOrderCommandHandler
	SplitWorkOrder  commands.SplitWorkOrderCommandHandler
	DeleteWorkOrder commands.DeleteWorkOrderCommandHandler
	UpdateTask      commands.UpdateTaskCommandHandler

	GetAllProcesses   queries.GetAllProcessesQueryHandler
	GetRoute          queries.GetRouteQueryHandler
	GetWorkOrder      queries.GetWorkOrderQueryHandler
	GetWorkOrderTasks queries.GetWorkOrderTasksQueryHandler
	GetTask           queries.GetTaskQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h        Handlers
	validate *validator.Validate
	logger   *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:        h,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "http_server"),
	}
}

// bind decodes the body into dst and checks its validate tags.
func (s *Server) bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ListProcesses handles GET /api/v1/processes.
func (s *Server) ListProcesses(c echo.Context) error {
	processes, err := s.h.GetAllProcesses.Handle(c.Request().Context(), queries.NewGetAllProcessesQuery())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProcessResponses(processes))
}

// CreateProcess handles POST /api/v1/processes.
func (s *Server) CreateProcess(c echo.Context) error {
	var req createProcessRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateProcessCommand(req.Name, req.Description)
	if err != nil {
		return err
	}

	id, err := s.h.CreateProcess.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: id.Bytes()})
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(c echo.Context) error {
	var req createRouteRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	steps, err := toStepDefinitions(req.Steps)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("steps", err)
	}

	cmd, err := commands.NewCreateRouteCommand(req.Name, steps)
	if err != nil {
		return err
	}

	id, err := s.h.CreateRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: id.Bytes()})
}

// GetRoute handles GET /api/v1/routes/{id}.
func (s *Server) GetRoute(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetRouteQuery(id)
	if err != nil {
		return err
	}

	rt, err := s.h.GetRoute.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRouteResponse(rt))
}

// CreateWorkOrder handles POST /api/v1/workorders.
func (s *Server) CreateWorkOrder(c echo.Context) error {
	var req createWorkOrderRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	routeID, err := kernel.UUIDFromBytes(req.RouteID[:])
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("route_id", err)
	}

	cmd, err := commands.NewCreateWorkOrderCommand(req.Name, routeID)
	if err != nil {
		return err
	}

	id, err := s.h.CreateWorkOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{ID: id.Bytes()})
}

// GetWorkOrder handles GET /api/v1/workorders/{id}.
func (s *Server) GetWorkOrder(c echo.Context, id kernel.UUID) error {
	return s.respondWorkOrder(c, id)
}

// UpdateWorkOrder handles PATCH /api/v1/workorders/{id}. Only the keys present
// in the body are applied.
func (s *Server) UpdateWorkOrder(c echo.Context, id kernel.UUID) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	patch, err := parseWorkOrderPatch(body, s.validate)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateWorkOrderCommand(id, patch)
	if err != nil {
		return err
	}

	if err = s.h.UpdateWorkOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWorkOrder(c, id)
}

// DeleteWorkOrder handles DELETE /api/v1/workorders/{id}.
func (s *Server) DeleteWorkOrder(c echo.Context, id kernel.UUID) error {
	cmd, err := commands.NewDeleteWorkOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.DeleteWorkOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SplitWorkOrder handles POST /api/v1/workorders/{id}/split.
func (s *Server) SplitWorkOrder(c echo.Context, id kernel.UUID) error {
	cmd, err := commands.NewSplitWorkOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.h.SplitWorkOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWorkOrder(c, id)
}

// ListWorkOrderTasks handles GET /api/v1/workorders/{id}/tasks.
func (s *Server) ListWorkOrderTasks(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetWorkOrderTasksQuery(id)
	if err != nil {
		return err
	}

	tasks, err := s.h.GetWorkOrderTasks.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// UpdateTask handles PATCH /api/v1/tasks/{id}.
func (s *Server) UpdateTask(c echo.Context, id kernel.UUID) error {
	var req updateTaskRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	status, err := task.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTaskCommand(id, status)
	if err != nil {
		return err
	}

	if err = s.h.UpdateTask.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.GetTask(c, id)
}

// GetTask handles GET /api/v1/tasks/{id}.
func (s *Server) GetTask(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetTaskQuery(id)
	if err != nil {
		return err
	}

	t, err := s.h.GetTask.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(t))
}

func (s *Server) respondWorkOrder(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetWorkOrderQuery(id)
	if err != nil {
		return err
	}

	wo, err := s.h.GetWorkOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWorkOrderResponse(wo))
}
