package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HabitStatusActive    = "active"
	HabitStatusPaused    = "paused"
	HabitStatusCompleted = "completed"
	HabitStatusArchived  = "archived"
)

// Habit rows are never hard-deleted while completion events reference them;
// lifecycle transitions flip Status instead.
type Habit struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name         string         `gorm:"not null;column:name" json:"name"`
	Description  string         `gorm:"column:description" json:"description"`
	Status       string         `gorm:"column:status;not null;default:'active';index" json:"status"`
	CurrentPhase int            `gorm:"column:current_phase;not null;default:1" json:"current_phase"`
	PhaseCount   int            `gorm:"column:phase_count;not null;default:3" json:"phase_count"`
	Difficulty   int            `gorm:"column:difficulty;not null;default:3" json:"difficulty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Habit) TableName() string {
	return "habit"
}
