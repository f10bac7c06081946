// Package queries contains read-only operations that bypass the domain model
// and read the tables directly. Every handler validates its query, runs plain
// SQL through GORM and maps rows into response structs.
package queries

import (
	"mes/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelUUIDPtr(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // a NULL column maps to a nil id
	}
	kid, err := toKernelUUID(id.UUID)
	if err != nil {
		return nil, err
	}
	return &kid, nil
}
