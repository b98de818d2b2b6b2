package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type MilestoneRepo interface {
	GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.Milestone, error)
	GetByHabitIDs(ctx context.Context, tx *gorm.DB, habitIDs []uuid.UUID) ([]*types.Milestone, error)
	// InsertIfAbsent returns false when the (habit_id, type) row already
	// existed; replayed sweeps land here and must stay silent.
	InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *types.Milestone) (bool, error)
}

type milestoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMilestoneRepo(db *gorm.DB, baseLog *logger.Logger) MilestoneRepo {
	repoLog := baseLog.With("repo", "MilestoneRepo")
	return &milestoneRepo{db: db, log: repoLog}
}

func (r *milestoneRepo) GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Milestone
	if habitID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("achieved_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *milestoneRepo) GetByHabitIDs(ctx context.Context, tx *gorm.DB, habitIDs []uuid.UUID) ([]*types.Milestone, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Milestone
	if len(habitIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("habit_id IN ?", habitIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *milestoneRepo) InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *types.Milestone) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return false, nil
	}

	err := transaction.WithContext(ctx).Create(row).Error
	if err == nil {
		return true, nil
	}
	if isUniqueViolation(err) {
		r.log.Debug("Milestone already recorded, insert skipped", "habit_id", row.HabitID, "type", row.Type)
		return false, nil
	}
	return false, err
}
