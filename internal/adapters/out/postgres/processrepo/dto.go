package processrepo

import (
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/process"

	"github.com/google/uuid"
)

// ProcessDTO is the persistence model of a catalog process.
type ProcessDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
}

func (ProcessDTO) TableName() string {
	return "processes"
}

func fromDomain(p *process.Process) ProcessDTO {
	return ProcessDTO{
		ID:          p.ID().Bytes(),
		Name:        p.Name(),
		Description: p.Description(),
	}
}

func toDomain(dto ProcessDTO) (*process.Process, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return process.RestoreProcess(id, dto.Name, dto.Description)
}
