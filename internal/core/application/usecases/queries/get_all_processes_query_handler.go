package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAllProcessesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllProcessesQueryHandler creates a handler reading directly from db.
func NewGetAllProcessesQueryHandler(db *gorm.DB) GetAllProcessesQueryHandler {
	return GetAllProcessesQueryHandler{db: db}
}

// Handle returns every process ordered by name.
func (h GetAllProcessesQueryHandler) Handle(
	ctx context.Context,
	query GetAllProcessesQuery,
) ([]GetAllProcessesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	processes := make([]GetAllProcessesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description
		FROM processes
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllProcessesQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.Name, &resp.Description); err != nil {
			return nil, err
		}

		if resp.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		processes = append(processes, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return processes, nil
}
