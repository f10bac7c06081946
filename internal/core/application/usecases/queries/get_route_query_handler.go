package queries

import (
	"context"
	"database/sql"
	"errors"

	"mes/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetRouteQueryHandler struct {
	db *gorm.DB
}

// NewGetRouteQueryHandler creates a handler reading directly from db.
func NewGetRouteQueryHandler(db *gorm.DB) GetRouteQueryHandler {
	return GetRouteQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the route does not exist.
func (h GetRouteQueryHandler) Handle(ctx context.Context, query GetRouteQuery) (GetRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRouteQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp := GetRouteQueryResponse{ID: query.ID(), Steps: make([]RouteStepResponse, 0)}

	err := db.Raw(`SELECT name FROM routes WHERE id = ?`, query.ID().String()).Row().Scan(&resp.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return GetRouteQueryResponse{}, errs.NewObjectNotFoundError("route", query.ID().String())
	}
	if err != nil {
		return GetRouteQueryResponse{}, err
	}

	rows, err := db.Raw(`
		SELECT
			rs.id,
			rs.process_id,
			p.name,
			rs.step_order
		FROM route_steps rs
		JOIN processes p ON p.id = rs.process_id
		WHERE rs.route_id = ?
		ORDER BY rs.step_order
	`, query.ID().String()).Rows()
	if err != nil {
		return GetRouteQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var step RouteStepResponse
		var id, processID uuid.UUID

		if err = rows.Scan(&id, &processID, &step.ProcessName, &step.Order); err != nil {
			return GetRouteQueryResponse{}, err
		}

		if step.ID, err = toKernelUUID(id); err != nil {
			return GetRouteQueryResponse{}, err
		}
		if step.ProcessID, err = toKernelUUID(processID); err != nil {
			return GetRouteQueryResponse{}, err
		}
		resp.Steps = append(resp.Steps, step)
	}

	if err = rows.Err(); err != nil {
		return GetRouteQueryResponse{}, err
	}

	return resp, nil
}
