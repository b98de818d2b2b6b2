package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProliferationAccepted  = "accepted"
	ProliferationDismissed = "dismissed"
	ProliferationPostponed = "postponed"
)

// ProliferationPromptResponse is an append-only log of how the user answered
// "ready to grow this habit?" prompts, used to throttle repeat prompts.
type ProliferationPromptResponse struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID     uuid.UUID `gorm:"type:uuid;not null;index" json:"habit_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Response    string    `gorm:"column:response;not null" json:"response"`
	RespondedAt time.Time `gorm:"column:responded_at;not null" json:"responded_at"`
}

func (ProliferationPromptResponse) TableName() string {
	return "proliferation_prompt_response"
}
