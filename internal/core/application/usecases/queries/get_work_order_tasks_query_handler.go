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

type GetWorkOrderTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkOrderTasksQueryHandler creates a handler reading directly from db.
func NewGetWorkOrderTasksQueryHandler(db *gorm.DB) GetWorkOrderTasksQueryHandler {
	return GetWorkOrderTasksQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the work order does not exist.
func (h GetWorkOrderTasksQueryHandler) Handle(
	ctx context.Context,
	query GetWorkOrderTasksQuery,
) ([]GetWorkOrderTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.WorkOrderID().String()

	var routeID uuid.UUID
	err := db.Raw(`SELECT route_id FROM work_orders WHERE id = ?`, id).Row().Scan(&routeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("work order", id)
	}
	if err != nil {
		return nil, err
	}

	// The join is restricted to the current route so that a task left bound
	// to a step of another route sorts with the unbound ones.
	rows, err := db.Raw(`
		SELECT
			t.id,
			t.process_id,
			p.name,
			t.route_step_id,
			rs.step_order,
			t.status
		FROM tasks t
		JOIN processes p ON p.id = t.process_id
		LEFT JOIN route_steps rs ON rs.id = t.route_step_id AND rs.route_id = ?
		WHERE t.work_order_id = ?
		ORDER BY CASE WHEN rs.step_order IS NULL THEN 1 ELSE 0 END, rs.step_order, t.id
	`, routeID.String(), id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]GetWorkOrderTasksQueryResponse, 0)
	for rows.Next() {
		var resp GetWorkOrderTasksQueryResponse
		var taskID, processID uuid.UUID
		var stepID uuid.NullUUID
		var stepOrder sql.NullInt64
		var status int

		if err = rows.Scan(&taskID, &processID, &resp.ProcessName, &stepID, &stepOrder, &status); err != nil {
			return nil, err
		}

		if resp.ID, err = toKernelUUID(taskID); err != nil {
			return nil, err
		}
		if resp.ProcessID, err = toKernelUUID(processID); err != nil {
			return nil, err
		}
		if resp.RouteStepID, err = toKernelUUIDPtr(stepID); err != nil {
			return nil, err
		}
		if stepOrder.Valid {
			order := int(stepOrder.Int64)
			resp.StepOrder = &order
		}
		resp.Status = task.Status(status)
		tasks = append(tasks, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
