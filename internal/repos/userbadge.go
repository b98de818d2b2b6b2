package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type UserBadgeRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBadge, error)
	// InsertIfAbsent returns false when the (user_id, badge_code) row already
	// existed; losing the insert race is not an error.
	InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *types.UserBadge) (bool, error)
}

type userBadgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBadgeRepo(db *gorm.DB, baseLog *logger.Logger) UserBadgeRepo {
	repoLog := baseLog.With("repo", "UserBadgeRepo")
	return &userBadgeRepo{db: db, log: repoLog}
}

func (r *userBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserBadge
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userBadgeRepo) InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *types.UserBadge) (bool, error) {
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
		r.log.Debug("Badge already unlocked, insert skipped", "badge_code", row.BadgeCode)
		return false, nil
	}
	return false, err
}
