package types

import (
	"time"

	"github.com/google/uuid"
)

// UserBadge is the durable unlock record. The (user_id, badge_code) unique
// index is what makes unlocking idempotent under concurrent triggers.
type UserBadge struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_badge,unique" json:"user_id"`
	BadgeCode  string     `gorm:"column:badge_code;not null;index:idx_user_badge,unique" json:"badge_code"`
	HabitID    *uuid.UUID `gorm:"type:uuid" json:"habit_id,omitempty"`
	Narrative  string     `gorm:"column:narrative" json:"narrative"`
	UnlockedAt time.Time  `gorm:"column:unlocked_at;not null" json:"unlocked_at"`
}

func (UserBadge) TableName() string {
	return "user_badge"
}
