package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/repos"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type CheckinInput struct {
	Completed       bool    `json:"completed"`
	Difficulty      *int    `json:"difficulty,omitempty"`
	MoodBefore      *int    `json:"mood_before,omitempty"`
	MoodAfter       *int    `json:"mood_after,omitempty"`
	EmotionalMarker *string `json:"emotional_marker,omitempty"`
	WantedMore      *bool   `json:"wanted_more,omitempty"`
	FeltEasy        *bool   `json:"felt_easy,omitempty"`
	Note            string  `json:"note,omitempty"`
}

// CheckinResult is the consolidated synchronous response to one check-in:
// the refreshed signals plus whatever this check-in newly unlocked.
type CheckinResult struct {
	Event          *types.CompletionEvent `json:"event"`
	Streak         engine.StreakResult    `json:"streak"`
	Stability      *StabilityAssessment   `json:"stability"`
	Recommendation engine.Recommendation  `json:"recommendation"`
	PhaseChanged   bool                   `json:"phase_changed"`
	CurrentPhase   int                    `json:"current_phase"`
	NewBadges      []UnlockedBadge        `json:"new_badges,omitempty"`
}

type CheckinService interface {
	RecordCheckin(ctx context.Context, userID, habitID uuid.UUID, input CheckinInput, today time.Time) (*CheckinResult, error)
}

type checkinService struct {
	db          *gorm.DB
	log         *logger.Logger
	habitRepo   repos.HabitRepo
	eventRepo   repos.CompletionEventRepo
	celebRepo   repos.CelebrationEventRepo
	progress    ProgressService
	badges      BadgeService
	phaseConfig engine.PhaseConfig
}

func NewCheckinService(
	db *gorm.DB,
	log *logger.Logger,
	habitRepo repos.HabitRepo,
	eventRepo repos.CompletionEventRepo,
	celebRepo repos.CelebrationEventRepo,
	progress ProgressService,
	badges BadgeService,
	phaseConfig engine.PhaseConfig,
) CheckinService {
	serviceLog := log.With("service", "CheckinService")
	return &checkinService{
		db:          db,
		log:         serviceLog,
		habitRepo:   habitRepo,
		eventRepo:   eventRepo,
		celebRepo:   celebRepo,
		progress:    progress,
		badges:      badges,
		phaseConfig: phaseConfig,
	}
}

func validateCheckinInput(input CheckinInput) error {
	inRange := func(v *int) bool { return v == nil || (*v >= 1 && *v <= 5) }
	if !inRange(input.Difficulty) {
		return fmt.Errorf("%w: difficulty must be 1-5", ErrInvalidInput)
	}
	if !inRange(input.MoodBefore) || !inRange(input.MoodAfter) {
		return fmt.Errorf("%w: mood must be 1-5", ErrInvalidInput)
	}
	if input.EmotionalMarker != nil {
		switch *input.EmotionalMarker {
		case types.EmotionalMarkerCalm, types.EmotionalMarkerEnergized, types.EmotionalMarkerProud,
			types.EmotionalMarkerFrustration, types.EmotionalMarkerAvoidance, types.EmotionalMarkerPain:
		default:
			return fmt.Errorf("%w: unknown emotional marker %q", ErrInvalidInput, *input.EmotionalMarker)
		}
	}
	return nil
}

func (s *checkinService) RecordCheckin(ctx context.Context, userID, habitID uuid.UUID, input CheckinInput, today time.Time) (*CheckinResult, error) {
	if err := validateCheckinInput(input); err != nil {
		return nil, err
	}
	habit, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID)
	if err != nil {
		return nil, err
	}

	event := &types.CompletionEvent{
		ID:              uuid.New(),
		HabitID:         habitID,
		UserID:          userID,
		Day:             engine.DayOf(today),
		Completed:       input.Completed,
		Difficulty:      input.Difficulty,
		MoodBefore:      input.MoodBefore,
		MoodAfter:       input.MoodAfter,
		EmotionalMarker: input.EmotionalMarker,
		WantedMore:      input.WantedMore,
		FeltEasy:        input.FeltEasy,
		Note:            input.Note,
	}
	if err := s.eventRepo.Upsert(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("upsert completion event: %w", err)
	}

	streakEvents, err := s.eventRepo.GetByHabitID(ctx, nil, habitID)
	if err != nil {
		return nil, fmt.Errorf("load completion events: %w", err)
	}
	streak := engine.ComputeStreaks(toDayCompletions(streakEvents), today)

	stability, err := s.progress.AssessStability(ctx, userID, habitID, today)
	if err != nil {
		return nil, err
	}

	since := engine.DayOf(today).AddDate(0, 0, -(s.phaseConfig.WindowDays + 1))
	windowEvents, err := s.eventRepo.GetByHabitSince(ctx, nil, habitID, since)
	if err != nil {
		return nil, fmt.Errorf("load window events: %w", err)
	}
	eval := engine.EvaluatePhase(toCheckinSignals(windowEvents), habit.CreatedAt, today, s.phaseConfig)

	currentPhase := habit.CurrentPhase
	phaseChanged := false
	if eval.Recommendation != engine.RecommendHold {
		next, changed := engine.ApplyRecommendation(habit.CurrentPhase, habit.PhaseCount, eval.Recommendation)
		if changed {
			if err := s.habitRepo.UpdatePhase(ctx, nil, habitID, next); err != nil {
				return nil, fmt.Errorf("update phase: %w", err)
			}
			s.log.Info("Habit phase changed",
				"habit_id", habitID, "from", habit.CurrentPhase, "to", next, "recommendation", eval.Recommendation)
			currentPhase = next
			phaseChanged = true
		}
	}

	if input.Completed && streak.Current > 0 && streak.Current%7 == 0 {
		celebration := &types.CelebrationEvent{
			ID:      uuid.New(),
			UserID:  userID,
			HabitID: &habitID,
			Kind:    types.CelebrationKindStreak,
			Message: fmt.Sprintf("%s is on a %d-day streak", habit.Name, streak.Current),
		}
		if _, cErr := s.celebRepo.Create(ctx, nil, []*types.CelebrationEvent{celebration}); cErr != nil {
			s.log.Warn("Failed to record streak celebration", "habit_id", habitID, "error", cErr)
		}
	}

	newBadges, err := s.badges.CheckBadgeUnlocks(ctx, userID, today)
	if err != nil {
		// The check-in itself is durable; badge evaluation can be retried.
		s.log.Warn("Badge check failed after checkin", "user_id", userID, "error", err)
		newBadges = nil
	}

	return &CheckinResult{
		Event:          event,
		Streak:         streak,
		Stability:      stability,
		Recommendation: eval.Recommendation,
		PhaseChanged:   phaseChanged,
		CurrentPhase:   currentPhase,
		NewBadges:      newBadges,
	}, nil
}
