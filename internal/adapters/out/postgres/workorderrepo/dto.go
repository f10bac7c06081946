package workorderrepo

import (
	"mes/internal/adapters/out/postgres/routerepo"
	"mes/internal/adapters/out/postgres/taskrepo"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// WorkOrderDTO is the persistence model of a work order. Its tasks are deleted
// with it; the route it is bound to cannot be deleted while it exists.
type WorkOrderDTO struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Name      string             `gorm:"type:varchar(100);not null"`
	Status    int                `gorm:"type:smallint;not null;index"`
	Scheduled bool               `gorm:"not null;default:false;index"`
	RouteID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	Route     routerepo.RouteDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:RESTRICT"`
	Version   int                `gorm:"not null"`
	Tasks     []taskrepo.TaskDTO `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

func fromDomain(wo *workorder.WorkOrder) WorkOrderDTO {
	return WorkOrderDTO{
		ID:        wo.ID().Bytes(),
		Name:      wo.Name(),
		Status:    int(wo.Status()),
		Scheduled: wo.IsScheduled(),
		RouteID:   wo.RouteID().Bytes(),
		Version:   wo.Version(),
	}
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	return workorder.RestoreWorkOrder(
		id,
		dto.Name,
		workorder.Status(dto.Status),
		dto.Scheduled,
		routeID,
		dto.Version,
	)
}
