package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type CelebrationEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.CelebrationEvent) ([]*types.CelebrationEvent, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CelebrationEvent, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type celebrationEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCelebrationEventRepo(db *gorm.DB, baseLog *logger.Logger) CelebrationEventRepo {
	repoLog := baseLog.With("repo", "CelebrationEventRepo")
	return &celebrationEventRepo{db: db, log: repoLog}
}

func (r *celebrationEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CelebrationEvent) ([]*types.CelebrationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.CelebrationEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *celebrationEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CelebrationEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CelebrationEvent
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *celebrationEventRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CelebrationEvent{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
