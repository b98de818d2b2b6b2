package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type HabitRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Habit) ([]*types.Habit, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Habit, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Habit, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	UpdatePhase(ctx context.Context, tx *gorm.DB, id uuid.UUID, phase int) error
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	MaxPhaseByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
}

type habitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitRepo(db *gorm.DB, baseLog *logger.Logger) HabitRepo {
	repoLog := baseLog.With("repo", "HabitRepo")
	return &habitRepo{db: db, log: repoLog}
}

func (r *habitRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Habit) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Habit{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *habitRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Habit
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Habit
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Habit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Habit
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Habit{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *habitRepo) UpdatePhase(ctx context.Context, tx *gorm.DB, id uuid.UUID, phase int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Habit{}).
		Where("id = ?", id).
		Update("current_phase", phase).Error
}

func (r *habitRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Habit{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *habitRepo) MaxPhaseByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max *int
	if err := transaction.WithContext(ctx).
		Model(&types.Habit{}).
		Where("user_id = ?", userID).
		Select("MAX(current_phase)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
