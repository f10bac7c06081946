package routerepo

import (
	"context"
	"errors"

	"mes/internal/adapters/out/postgres/pgerr"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/route"
	"mes/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository on GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteRepository creates a route repository on db.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route with all of its steps.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerr.Translate("route", err)
	}
	if len(dto.Steps) > 0 {
		if err := db.Omit(clause.Associations).Create(&dto.Steps).Error; err != nil {
			return pgerr.Translate("route steps", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update renames the route and synchronizes its steps: rows of steps that left
// the route are deleted before new steps are inserted, so a new step may reuse
// a freed order. Surviving steps are immutable and are not rewritten.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&RouteDTO{}).Where("id = ?", dto.ID).Update("name", dto.Name)
	if result.Error != nil {
		return pgerr.Translate("route", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID().String())
	}

	var stored []uuid.UUID
	if err := db.Model(&RouteStepDTO{}).Where("route_id = ?", dto.ID).Pluck("id", &stored).Error; err != nil {
		return err
	}

	current := make(map[uuid.UUID]struct{}, len(dto.Steps))
	for _, s := range dto.Steps {
		current[s.ID] = struct{}{}
	}
	existing := make(map[uuid.UUID]struct{}, len(stored))
	var obsolete []uuid.UUID
	for _, id := range stored {
		existing[id] = struct{}{}
		if _, ok := current[id]; !ok {
			obsolete = append(obsolete, id)
		}
	}

	if len(obsolete) > 0 {
		if err := db.Where("id IN ?", obsolete).Delete(&RouteStepDTO{}).Error; err != nil {
			return pgerr.Translate("route steps", err)
		}
	}

	var added []RouteStepDTO
	for _, s := range dto.Steps {
		if _, ok := existing[s.ID]; !ok {
			added = append(added, s)
		}
	}
	if len(added) > 0 {
		if err := db.Omit(clause.Associations).Create(&added).Error; err != nil {
			return pgerr.Translate("route steps", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route with its steps sorted by order.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a route; its steps go with it through the schema cascade.
// Returns RuleIsViolatedError while a work order still references it.
func (r *GormRouteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&RouteDTO{})
	if result.Error != nil {
		return pgerr.Translate("route", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", id.String())
	}

	return nil
}
