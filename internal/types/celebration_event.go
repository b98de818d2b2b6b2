package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	CelebrationKindBadge     = "badge"
	CelebrationKindMilestone = "milestone"
	CelebrationKindStreak    = "streak"
)

// CelebrationEvent is an append-only log of moments worth celebrating.
// Rows are never mutated or deleted; badge conditions count them.
type CelebrationEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	HabitID   *uuid.UUID `gorm:"type:uuid;index" json:"habit_id,omitempty"`
	Kind      string     `gorm:"column:kind;not null" json:"kind"`
	Message   string     `gorm:"column:message" json:"message"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (CelebrationEvent) TableName() string {
	return "celebration_event"
}
