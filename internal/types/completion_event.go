package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EmotionalMarkerCalm        = "calm"
	EmotionalMarkerEnergized   = "energized"
	EmotionalMarkerProud       = "proud"
	EmotionalMarkerFrustration = "frustration"
	EmotionalMarkerAvoidance   = "avoidance"
	EmotionalMarkerPain        = "pain"
)

// CompletionEvent is the per-day check-in record. Day is date precision
// (midnight UTC); the (habit_id, day) unique index makes check-ins an
// upsert, last write wins for the same day.
type CompletionEvent struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_habit_day,unique" json:"habit_id"`
	Habit           *Habit         `gorm:"constraint:OnDelete:CASCADE;foreignKey:HabitID;references:ID" json:"habit,omitempty"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Day             time.Time      `gorm:"column:day;not null;index:idx_habit_day,unique" json:"day"`
	Completed       bool           `gorm:"column:completed;not null;default:false" json:"completed"`
	Difficulty      *int           `gorm:"column:difficulty" json:"difficulty,omitempty"`
	MoodBefore      *int           `gorm:"column:mood_before" json:"mood_before,omitempty"`
	MoodAfter       *int           `gorm:"column:mood_after" json:"mood_after,omitempty"`
	EmotionalMarker *string        `gorm:"column:emotional_marker" json:"emotional_marker,omitempty"`
	WantedMore      *bool          `gorm:"column:wanted_more" json:"wanted_more,omitempty"`
	FeltEasy        *bool          `gorm:"column:felt_easy" json:"felt_easy,omitempty"`
	Note            string         `gorm:"column:note" json:"note"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (CompletionEvent) TableName() string {
	return "completion_event"
}
