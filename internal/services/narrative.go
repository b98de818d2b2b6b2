package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/logger"
)

// NarrativeService turns unlock events into short celebratory text. It is a
// best-effort collaborator: callers persist the unlock regardless and fall
// back to an empty narrative ("unlocked, description pending") on failure.
type NarrativeService interface {
	MilestoneNarrative(ctx context.Context, habitName string, milestoneType string, streakDays int) (string, error)
	BadgeNarrative(ctx context.Context, badge engine.Badge) (string, error)
}

type narrativeService struct {
	log *logger.Logger
	ai  AIClient
}

// NewNarrativeService accepts a nil AIClient; without one it serves canned
// text so unlocks still carry a message in environments with no API key.
func NewNarrativeService(log *logger.Logger, ai AIClient) NarrativeService {
	serviceLog := log.With("service", "NarrativeService")
	return &narrativeService{log: serviceLog, ai: ai}
}

const narrativeTimeout = 8 * time.Second

func (n *narrativeService) MilestoneNarrative(ctx context.Context, habitName string, milestoneType string, streakDays int) (string, error) {
	if n.ai == nil {
		return fmt.Sprintf("%d days of %s in a row. Keep going!", streakDays, habitName), nil
	}
	ctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"The user has kept the habit %q for %d consecutive days, reaching the %s milestone. "+
			"Write one short, warm, specific congratulation (max two sentences). No emoji, no hashtags.",
		habitName, streakDays, milestoneType,
	)
	completion, err := n.ai.Chat(ctx, []AIMessage{
		{Role: "system", Content: "You are an encouraging habit coach."},
		{Role: "user", Content: prompt},
	}, &AIOptions{Temperature: 0.8, MaxTokens: 120})
	if err != nil {
		return "", fmt.Errorf("milestone narrative: %w", err)
	}
	return completion.Content, nil
}

func (n *narrativeService) BadgeNarrative(ctx context.Context, badge engine.Badge) (string, error) {
	if n.ai == nil {
		return fmt.Sprintf("Badge unlocked: %s. %s", badge.Name, badge.Description), nil
	}
	ctx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"The user just unlocked the %q badge (%s): %s. "+
			"Write one short, warm congratulation (max two sentences). No emoji, no hashtags.",
		badge.Name, badge.Rarity, badge.Description,
	)
	completion, err := n.ai.Chat(ctx, []AIMessage{
		{Role: "system", Content: "You are an encouraging habit coach."},
		{Role: "user", Content: prompt},
	}, &AIOptions{Temperature: 0.8, MaxTokens: 120})
	if err != nil {
		return "", fmt.Errorf("badge narrative: %w", err)
	}
	return completion.Content, nil
}
