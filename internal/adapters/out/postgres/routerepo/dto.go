package routerepo

import (
	"mes/internal/adapters/out/postgres/processrepo"
	"mes/internal/adapters/out/postgres/taskrepo"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO is the persistence model of a route. Steps are deleted with it.
type RouteDTO struct {
	ID    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name  string         `gorm:"type:varchar(100);not null"`
	Steps []RouteStepDTO `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

// RouteStepDTO is one (route, process, order) binding. Deleting a step keeps
// its tasks but unbinds them.
type RouteStepDTO struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	RouteID   uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_route_steps_route_order,priority:1"`
	ProcessID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Process   processrepo.ProcessDTO `gorm:"foreignKey:ProcessID;constraint:OnDelete:RESTRICT"`
	Order     int                    `gorm:"column:step_order;not null;uniqueIndex:idx_route_steps_route_order,priority:2"`
	Tasks     []taskrepo.TaskDTO     `gorm:"foreignKey:RouteStepID;constraint:OnDelete:SET NULL"`
}

func (RouteStepDTO) TableName() string {
	return "route_steps"
}

func fromDomain(r *route.Route) RouteDTO {
	routeID := r.ID().Bytes()
	steps := make([]RouteStepDTO, 0, len(r.Steps()))
	for _, s := range r.Steps() {
		steps = append(steps, stepFromDomain(routeID, s))
	}

	return RouteDTO{
		ID:    routeID,
		Name:  r.Name(),
		Steps: steps,
	}
}

func stepFromDomain(routeID uuid.UUID, s *route.Step) RouteStepDTO {
	return RouteStepDTO{
		ID:        s.ID().Bytes(),
		RouteID:   routeID,
		ProcessID: s.ProcessID().Bytes(),
		Order:     s.Order(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	steps := make([]*route.Step, 0, len(dto.Steps))
	for _, stepDto := range dto.Steps {
		s, stepErr := stepToDomain(stepDto)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, s)
	}

	return route.RestoreRoute(id, dto.Name, steps)
}

func stepToDomain(dto RouteStepDTO) (*route.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	processID, err := kernel.UUIDFromBytes(dto.ProcessID[:])
	if err != nil {
		return nil, err
	}

	return route.RestoreStep(id, processID, dto.Order)
}
