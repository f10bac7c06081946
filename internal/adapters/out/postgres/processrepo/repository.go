package processrepo

import (
	"context"
	"errors"

	"mes/internal/adapters/out/postgres/pgerr"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/process"
	"mes/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProcessRepository implements ports.ProcessRepository on GORM.
type GormProcessRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProcessRepository creates a process repository on db. Written
// aggregates are reported to tracker.
func NewGormProcessRepository(db *gorm.DB, tracker aggregateTracker) *GormProcessRepository {
	return &GormProcessRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new process.
func (r *GormProcessRepository) Add(ctx context.Context, aggregate *process.Process) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("process", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a process by ID.
// Returns ObjectNotFoundError when it does not exist.
func (r *GormProcessRepository) Get(ctx context.Context, id kernel.UUID) (*process.Process, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProcessDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("process", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
