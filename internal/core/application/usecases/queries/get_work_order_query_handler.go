package queries

import (
	"context"
	"database/sql"
	"errors"

	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetWorkOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkOrderQueryHandler creates a handler reading directly from db.
func NewGetWorkOrderQueryHandler(db *gorm.DB) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when the work order does not exist.
func (h GetWorkOrderQueryHandler) Handle(
	ctx context.Context,
	query GetWorkOrderQuery,
) (GetWorkOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	var resp GetWorkOrderQueryResponse
	var routeID uuid.UUID
	var status int

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			status,
			scheduled,
			route_id,
			version
		FROM work_orders
		WHERE id = ?
	`, query.ID().String()).Row().Scan(&resp.Name, &status, &resp.Scheduled, &routeID, &resp.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return GetWorkOrderQueryResponse{}, errs.NewObjectNotFoundError("work order", query.ID().String())
	}
	if err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	resp.ID = query.ID()
	resp.Status = workorder.Status(status)
	if resp.RouteID, err = toKernelUUID(routeID); err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	return resp, nil
}
