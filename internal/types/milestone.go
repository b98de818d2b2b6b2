package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	MilestoneDay7   = "day_7"
	MilestoneDay21  = "day_21"
	MilestoneDay66  = "day_66"
	MilestoneDay100 = "day_100"
	MilestoneCustom = "custom"
)

// Milestone marks a streak threshold reached for a habit, at most once per
// (habit_id, type). Rows are created by the daily sweep and never mutated.
type Milestone struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID    uuid.UUID `gorm:"type:uuid;not null;index:idx_habit_milestone,unique" json:"habit_id"`
	Habit      *Habit    `gorm:"constraint:OnDelete:CASCADE;foreignKey:HabitID;references:ID" json:"habit,omitempty"`
	Type       string    `gorm:"column:type;not null;index:idx_habit_milestone,unique" json:"type"`
	StreakDays int       `gorm:"column:streak_days;not null" json:"streak_days"`
	Narrative  string    `gorm:"column:narrative" json:"narrative"`
	AchievedAt time.Time `gorm:"column:achieved_at;not null" json:"achieved_at"`
}

func (Milestone) TableName() string {
	return "milestone"
}
