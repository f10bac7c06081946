package taskrepo

import (
	"mes/internal/adapters/out/postgres/processrepo"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"

	"github.com/google/uuid"
)

// TaskDTO is the persistence model of a task. The work_order_id and
// route_step_id constraints are declared by the owning tables.
type TaskDTO struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	WorkOrderID uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProcessID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Process     processrepo.ProcessDTO `gorm:"foreignKey:ProcessID;constraint:OnDelete:RESTRICT"`
	RouteStepID *uuid.UUID             `gorm:"type:uuid;index"`
	Status      int                    `gorm:"type:smallint;not null"`
}

func (TaskDTO) TableName() string {
	return "tasks"
}

func fromDomain(t *task.Task) TaskDTO {
	var routeStepID *uuid.UUID
	if id := t.RouteStepID(); id != nil {
		raw := id.Bytes()
		routeStepID = &raw
	}

	return TaskDTO{
		ID:          t.ID().Bytes(),
		WorkOrderID: t.WorkOrderID().Bytes(),
		ProcessID:   t.ProcessID().Bytes(),
		RouteStepID: routeStepID,
		Status:      int(t.Status()),
	}
}

func toDomain(dto TaskDTO) (*task.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}

	processID, err := kernel.UUIDFromBytes(dto.ProcessID[:])
	if err != nil {
		return nil, err
	}

	var routeStepID *kernel.UUID
	if dto.RouteStepID != nil {
		stepID, stepErr := kernel.UUIDFromBytes((*dto.RouteStepID)[:])
		if stepErr != nil {
			return nil, stepErr
		}
		routeStepID = &stepID
	}

	return task.RestoreTask(id, workOrderID, processID, routeStepID, task.Status(dto.Status))
}
