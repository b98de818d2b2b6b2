package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type ProliferationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ProliferationPromptResponse) error
	GetByHabitSince(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, since time.Time) ([]*types.ProliferationPromptResponse, error)
	LatestByHabit(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (*types.ProliferationPromptResponse, error)
}

type proliferationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProliferationRepo(db *gorm.DB, baseLog *logger.Logger) ProliferationRepo {
	repoLog := baseLog.With("repo", "ProliferationRepo")
	return &proliferationRepo{db: db, log: repoLog}
}

func (r *proliferationRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ProliferationPromptResponse) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *proliferationRepo) GetByHabitSince(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, since time.Time) ([]*types.ProliferationPromptResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProliferationPromptResponse
	if habitID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("habit_id = ? AND responded_at >= ?", habitID, since).
		Order("responded_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *proliferationRepo) LatestByHabit(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) (*types.ProliferationPromptResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if habitID == uuid.Nil {
		return nil, nil
	}

	var result types.ProliferationPromptResponse
	err := transaction.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("responded_at DESC").
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
