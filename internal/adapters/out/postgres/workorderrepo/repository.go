package workorderrepo

import (
	"context"
	"errors"
	"fmt"

	"mes/internal/adapters/out/postgres/pgerr"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/workorder"
	"mes/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkOrderRepository implements ports.WorkOrderRepository on GORM.
//
// Writes are guarded by the version column: Update only matches the row that
// still carries the version the aggregate was loaded with and bumps it.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWorkOrderRepository creates a work-order repository on db.
func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new work order.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerr.Translate("work order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"name":      dto.Name,
			"status":    dto.Status,
			"scheduled": dto.Scheduled,
			"route_id":  dto.RouteID,
			"version":   dto.Version + 1,
		})
	if result.Error != nil {
		return pgerr.Translate("work order", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormWorkOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&WorkOrderDTO{})
	if result.Error != nil {
		return pgerr.Translate("work order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("work order", id.String())
	}

	return nil
}

func (r *GormWorkOrderRepository) GetAllScheduledIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Where("scheduled = ?", true).
		Order("id").
		Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, kid)
	}

	return ids, nil
}

func (r *GormWorkOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("work order", id.String())
		}
		return nil, pgerr.Translate("work order", err)
	}

	return toDomain(dto)
}

func (r *GormWorkOrderRepository) missingOrStale(ctx context.Context, aggregate *workorder.WorkOrder) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("work order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError(
		"work order",
		fmt.Errorf("work order %s was modified after version %d was read", aggregate.ID(), aggregate.Version()),
	)
}
