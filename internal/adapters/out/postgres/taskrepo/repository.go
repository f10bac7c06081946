package taskrepo

import (
	"context"
	"errors"

	"mes/internal/adapters/out/postgres/pgerr"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/task"
	"mes/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository implements ports.TaskRepository on GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a task repository on db.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts all tasks in one statement.
func (r *GormTaskRepository) Add(ctx context.Context, tasks ...*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(t))
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dtos).Error; err != nil {
		return pgerr.Translate("task", err)
	}

	for _, t := range tasks {
		r.tracker.TrackAggregate(t.ID(), t)
	}
	return nil
}

// Update writes the task status. The work order, process and route step of a
// task never change after creation.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *task.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Update("status", dto.Status)
	if result.Error != nil {
		return pgerr.Translate("task", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("task", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes tasks by ID in a single statement.
func (r *GormTaskRepository) Delete(ctx context.Context, tasks ...*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]any, 0, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		ids = append(ids, t.ID().Bytes())
	}

	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&TaskDTO{}).Error; err != nil {
		return pgerr.Translate("task", err)
	}

	for _, t := range tasks {
		r.tracker.TrackAggregate(t.ID(), t)
	}
	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*task.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByWorkOrder returns every task of a work order, bound or not.
func (r *GormTaskRepository) GetByWorkOrder(ctx context.Context, workOrderID kernel.UUID) ([]*task.Task, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TaskDTO
	if err := r.db.WithContext(ctx).
		Where("work_order_id = ?", workOrderID.Bytes()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}
