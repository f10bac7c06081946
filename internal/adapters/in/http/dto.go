package http

import (
	"mes/internal/core/application/usecases/queries"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type createProcessRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type stepRequest struct {
	ProcessID openapi_types.UUID `json:"process_id" validate:"required"`
	Order     int                `json:"order" validate:"min=1"`
}

type createRouteRequest struct {
	Name  string        `json:"name" validate:"required,max=100"`
	Steps []stepRequest `json:"steps" validate:"dive"`
}

type createWorkOrderRequest struct {
	Name    string             `json:"name" validate:"required,max=100"`
	RouteID openapi_types.UUID `json:"route_id" validate:"required"`
}

type updateTaskRequest struct {
	Status string `json:"status" validate:"required,oneof=pending unreported in_progress completed"`
}

type createdResponse struct {
	ID openapi_types.UUID `json:"id"`
}

type processResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
}

type routeStepResponse struct {
	ID          openapi_types.UUID `json:"id"`
	ProcessID   openapi_types.UUID `json:"process_id"`
	ProcessName string             `json:"process_name"`
	Order       int                `json:"order"`
}

type routeResponse struct {
	ID    openapi_types.UUID  `json:"id"`
	Name  string              `json:"name"`
	Steps []routeStepResponse `json:"steps"`
}

type workOrderResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	Status    string             `json:"status"`
	Scheduled bool               `json:"scheduled"`
	RouteID   openapi_types.UUID `json:"route_id"`
	Version   int                `json:"version"`
}

type taskResponse struct {
	ID          openapi_types.UUID  `json:"id"`
	WorkOrderID *openapi_types.UUID `json:"work_order_id,omitempty"`
	ProcessID   openapi_types.UUID  `json:"process_id"`
	ProcessName string              `json:"process_name"`
	RouteStepID *openapi_types.UUID `json:"route_step_id"`
	StepOrder   *int                `json:"step_order"`
	Status      string              `json:"status"`
}

func toStepDefinitions(steps []stepRequest) ([]route.StepDefinition, error) {
	defs := make([]route.StepDefinition, 0, len(steps))
	for _, s := range steps {
		processID, err := kernel.UUIDFromBytes(s.ProcessID[:])
		if err != nil {
			return nil, err
		}
		defs = append(defs, route.StepDefinition{ProcessID: processID, Order: s.Order})
	}
	return defs, nil
}

func toProcessResponses(processes []queries.GetAllProcessesQueryResponse) []processResponse {
	resp := make([]processResponse, len(processes))
	for i, p := range processes {
		resp[i] = processResponse{ID: p.ID.Bytes(), Name: p.Name, Description: p.Description}
	}
	return resp
}

func toRouteResponse(rt queries.GetRouteQueryResponse) routeResponse {
	resp := routeResponse{ID: rt.ID.Bytes(), Name: rt.Name, Steps: make([]routeStepResponse, len(rt.Steps))}
	for i, s := range rt.Steps {
		resp.Steps[i] = routeStepResponse{
			ID:          s.ID.Bytes(),
			ProcessID:   s.ProcessID.Bytes(),
			ProcessName: s.ProcessName,
			Order:       s.Order,
		}
	}
	return resp
}

func toWorkOrderResponse(wo queries.GetWorkOrderQueryResponse) workOrderResponse {
	return workOrderResponse{
		ID:        wo.ID.Bytes(),
		Name:      wo.Name,
		Status:    wo.Status.String(),
		Scheduled: wo.Scheduled,
		RouteID:   wo.RouteID.Bytes(),
		Version:   wo.Version,
	}
}

func toTaskResponses(tasks []queries.GetWorkOrderTasksQueryResponse) []taskResponse {
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = taskResponse{
			ID:          t.ID.Bytes(),
			ProcessID:   t.ProcessID.Bytes(),
			ProcessName: t.ProcessName,
			StepOrder:   t.StepOrder,
			Status:      t.Status.String(),
		}
		if t.RouteStepID != nil {
			stepID := t.RouteStepID.Bytes()
			resp[i].RouteStepID = &stepID
		}
	}
	return resp
}

func toTaskResponse(t queries.GetTaskQueryResponse) taskResponse {
	workOrderID := t.WorkOrderID.Bytes()
	resp := taskResponse{
		ID:          t.ID.Bytes(),
		WorkOrderID: &workOrderID,
		ProcessID:   t.ProcessID.Bytes(),
		ProcessName: t.ProcessName,
		StepOrder:   t.StepOrder,
		Status:      t.Status.String(),
	}
	if t.RouteStepID != nil {
		stepID := t.RouteStepID.Bytes()
		resp.RouteStepID = &stepID
	}
	return resp
}
