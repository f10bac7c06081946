package http

import (
	"fmt"
	"net/http"

	"mes/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	ListProcesses(c echo.Context) error
	CreateProcess(c echo.Context) error
	CreateRoute(c echo.Context) error
	GetRoute(c echo.Context, id kernel.UUID) error
	CreateWorkOrder(c echo.Context) error
	GetWorkOrder(c echo.Context, id kernel.UUID) error
	UpdateWorkOrder(c echo.Context, id kernel.UUID) error
	DeleteWorkOrder(c echo.Context, id kernel.UUID) error
	SplitWorkOrder(c echo.Context, id kernel.UUID) error
	ListWorkOrderTasks(c echo.Context, id kernel.UUID) error
	GetTask(c echo.Context, id kernel.UUID) error
	UpdateTask(c echo.Context, id kernel.UUID) error
}

// ServerInterfaceWrapper binds path parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// withID binds the {id} path parameter.
func (w *ServerInterfaceWrapper) withID(next func(echo.Context, kernel.UUID) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		var raw openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		}

		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		}

		return next(c, id)
	}
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts the API under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/processes", si.ListProcesses)
	router.POST(baseURL+"/processes", si.CreateProcess)
	router.POST(baseURL+"/routes", si.CreateRoute)
	router.GET(baseURL+"/routes/:id", w.withID(si.GetRoute))
	router.POST(baseURL+"/workorders", si.CreateWorkOrder)
	router.GET(baseURL+"/workorders/:id", w.withID(si.GetWorkOrder))
	router.PATCH(baseURL+"/workorders/:id", w.withID(si.UpdateWorkOrder))
	router.DELETE(baseURL+"/workorders/:id", w.withID(si.DeleteWorkOrder))
	router.POST(baseURL+"/workorders/:id/split", w.withID(si.SplitWorkOrder))
	router.GET(baseURL+"/workorders/:id/tasks", w.withID(si.ListWorkOrderTasks))
	router.GET(baseURL+"/tasks/:id", w.withID(si.GetTask))
	router.PATCH(baseURL+"/tasks/:id", w.withID(si.UpdateTask))
}
