package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type CompletionEventRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.CompletionEvent) error
	GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.CompletionEvent, error)
	GetByHabitSince(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, since time.Time) ([]*types.CompletionEvent, error)
	CountCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountPerfectDays(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type completionEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletionEventRepo(db *gorm.DB, baseLog *logger.Logger) CompletionEventRepo {
	repoLog := baseLog.With("repo", "CompletionEventRepo")
	return &completionEventRepo{db: db, log: repoLog}
}

// Upsert writes the check-in for (habit_id, day); a same-day re-submit
// overwrites the earlier values, last write wins. A single INSERT ... ON
// CONFLICT statement, so two simultaneous check-ins for the same day cannot
// both take the insert path and surface the unique index as an error.
func (r *completionEventRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.CompletionEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "habit_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"completed",
				"difficulty",
				"mood_before",
				"mood_after",
				"emotional_marker",
				"wanted_more",
				"felt_easy",
				"note",
				"user_id",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return err
	}
	// On conflict the stored row keeps its original id and created_at; reload
	// so callers hand back the canonical row.
	return transaction.WithContext(ctx).
		Where("habit_id = ? AND day = ?", row.HabitID, row.Day).
		First(row).Error
}

func (r *completionEventRepo) GetByHabitID(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) ([]*types.CompletionEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CompletionEvent
	if habitID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("day DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *completionEventRepo) GetByHabitSince(ctx context.Context, tx *gorm.DB, habitID uuid.UUID, since time.Time) ([]*types.CompletionEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CompletionEvent
	if habitID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("habit_id = ? AND day >= ?", habitID, since).
		Order("day DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *completionEventRepo) CountCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CompletionEvent{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPerfectDays counts calendar days on which every currently active habit
// of the user has a completed event.
func (r *completionEventRepo) CountPerfectDays(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var active int64
	if err := transaction.WithContext(ctx).
		Model(&types.Habit{}).
		Where("user_id = ? AND status = ?", userID, types.HabitStatusActive).
		Count(&active).Error; err != nil {
		return 0, err
	}
	if active == 0 {
		return 0, nil
	}

	var count int64
	err := transaction.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT day FROM completion_event
			WHERE user_id = ? AND completed = ?
			GROUP BY day
			HAVING COUNT(DISTINCT habit_id) >= ?
		) perfect
	`, userID, true, active).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
