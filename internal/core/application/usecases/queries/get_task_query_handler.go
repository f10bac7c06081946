package queries

import (
	"context"
	"database/sql"
	"errors"

	"mes/internal/core/domain/model/task"
	"mes/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetTaskQueryHandler struct {
	db *gorm.DB
}

// NewGetTaskQueryHandler creates a handler reading directly from db.
func NewGetTaskQueryHandler(db *gorm.DB) GetTaskQueryHandler {
	return GetTaskQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the task does not exist.
func (h GetTaskQueryHandler) Handle(ctx context.Context, query GetTaskQuery) (GetTaskQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTaskQueryResponse{}, err
	}

	id := query.ID().String()

	var resp GetTaskQueryResponse
	var taskID, workOrderID, processID uuid.UUID
	var stepID uuid.NullUUID
	var stepOrder sql.NullInt64
	var status int

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.work_order_id,
			t.process_id,
			p.name,
			t.route_step_id,
			rs.step_order,
			t.status
		FROM tasks t
		JOIN processes p ON p.id = t.process_id
		JOIN work_orders wo ON wo.id = t.work_order_id
		LEFT JOIN route_steps rs ON rs.id = t.route_step_id AND rs.route_id = wo.route_id
		WHERE t.id = ?
	`, id).Row().Scan(&taskID, &workOrderID, &processID, &resp.ProcessName, &stepID, &stepOrder, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTaskQueryResponse{}, errs.NewObjectNotFoundError("task", id)
	}
	if err != nil {
		return GetTaskQueryResponse{}, err
	}

	if resp.ID, err = toKernelUUID(taskID); err != nil {
		return GetTaskQueryResponse{}, err
	}
	if resp.WorkOrderID, err = toKernelUUID(workOrderID); err != nil {
		return GetTaskQueryResponse{}, err
	}
	if resp.ProcessID, err = toKernelUUID(processID); err != nil {
		return GetTaskQueryResponse{}, err
	}
	if resp.RouteStepID, err = toKernelUUIDPtr(stepID); err != nil {
		return GetTaskQueryResponse{}, err
	}
	if stepOrder.Valid {
		order := int(stepOrder.Int64)
		resp.StepOrder = &order
	}
	resp.Status = task.Status(status)

	return resp, nil
}
