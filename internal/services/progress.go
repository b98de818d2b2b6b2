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

const (
	stabilityWindowDays = 14
	// How long a previous prompt response suppresses the next prompt.
	proliferationCooldown = 14 * 24 * time.Hour
	dismissCooldown       = 30 * 24 * time.Hour
)

// StabilityAssessment is the engine result plus the prompt throttle decision,
// which needs the response log and so lives here rather than in the engine.
type StabilityAssessment struct {
	engine.StabilityResult
	PromptEligible bool `json:"prompt_eligible"`
}

type PhaseAssessment struct {
	engine.PhaseEvaluation
	CurrentPhase int `json:"current_phase"`
	PhaseCount   int `json:"phase_count"`
}

type ProgressService interface {
	ComputeStreak(ctx context.Context, userID, habitID uuid.UUID, today time.Time) (*engine.StreakResult, error)
	AssessStability(ctx context.Context, userID, habitID uuid.UUID, today time.Time) (*StabilityAssessment, error)
	EvaluatePhaseTransition(ctx context.Context, userID, habitID uuid.UUID, today time.Time) (*PhaseAssessment, error)
	RecordProliferationResponse(ctx context.Context, userID, habitID uuid.UUID, response string, today time.Time) error
}

type progressService struct {
	db          *gorm.DB
	log         *logger.Logger
	habitRepo   repos.HabitRepo
	eventRepo   repos.CompletionEventRepo
	prolifRepo  repos.ProliferationRepo
	phaseConfig engine.PhaseConfig
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	habitRepo repos.HabitRepo,
	eventRepo repos.CompletionEventRepo,
	prolifRepo repos.ProliferationRepo,
	phaseConfig engine.PhaseConfig,
) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:          db,
		log:         serviceLog,
		habitRepo:   habitRepo,
		eventRepo:   eventRepo,
		prolifRepo:  prolifRepo,
		phaseConfig: phaseConfig,
	}
}

// loadOwnedHabit is the shared ownership check: input errors fail fast before
// any computation or write happens.
func loadOwnedHabit(ctx context.Context, habitRepo repos.HabitRepo, userID, habitID uuid.UUID) (*types.Habit, error) {
	habits, err := habitRepo.GetByIDs(ctx, nil, []uuid.UUID{habitID})
	if err != nil {
		return nil, fmt.Errorf("load habit: %w", err)
	}
	if len(habits) == 0 {
		return nil, ErrHabitNotFound
	}
	habit := habits[0]
	if habit.UserID != userID {
		return nil, ErrForbidden
	}
	return habit, nil
}

func (s *progressService) ComputeStreak(ctx context.Context, userID, habitID uuid.UUID, today time.Time) (*engine.StreakResult, error) {
	if _, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetByHabitID(ctx, nil, habitID)
	if err != nil {
		return nil, fmt.Errorf("load completion events: %w", err)
	}
	result := engine.ComputeStreaks(toDayCompletions(events), today)
	return &result, nil
}

func (s *progressService) AssessStability(ctx context.Context, userID, habitID uuid.UUID, today time.Time) (*StabilityAssessment, error) {
	habit, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.GetByHabitID(ctx, nil, habitID)
	if err != nil {
		return nil, fmt.Errorf("load completion events: %w", err)
	}

	input := buildStabilityInput(habit, events, today)
	result := engine.AssessStability(input)

	assessment := &StabilityAssessment{StabilityResult: result}
	if result.ReadyForProliferation {
		eligible, err := s.promptEligible(ctx, habitID, today)
		if err != nil {
			return nil, err
		}
		assessment.PromptEligible = eligible
	}
	return assessment, nil
}

// promptEligible applies the throttle: any recent response suppresses the
// prompt, a dismissal suppresses it for longer.
func (s *progressService) promptEligible(ctx context.Context, habitID uuid.UUID, today time.Time) (bool, error) {
	latest, err := s.prolifRepo.LatestByHabit(ctx, nil, habitID)
	if err != nil {
		return false, fmt.Errorf("load proliferation responses: %w", err)
	}
	if latest == nil {
		return true, nil
	}
	cooldown := proliferationCooldown
	if latest.Response == types.ProliferationDismissed {
		cooldown = dismissCooldown
	}
	return today.Sub(latest.RespondedAt) >= cooldown, nil
}

func (s *progressService) EvaluatePhaseTransition(ctx context.Context, userID, habitID uuid.UUID, today time.Time) (*PhaseAssessment, error) {
	habit, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID)
	if err != nil {
		return nil, err
	}
	since := engine.DayOf(today).AddDate(0, 0, -(s.phaseConfig.WindowDays + 1))
	events, err := s.eventRepo.GetByHabitSince(ctx, nil, habitID, since)
	if err != nil {
		return nil, fmt.Errorf("load completion events: %w", err)
	}
	eval := engine.EvaluatePhase(toCheckinSignals(events), habit.CreatedAt, today, s.phaseConfig)
	return &PhaseAssessment{
		PhaseEvaluation: eval,
		CurrentPhase:    habit.CurrentPhase,
		PhaseCount:      habit.PhaseCount,
	}, nil
}

func (s *progressService) RecordProliferationResponse(ctx context.Context, userID, habitID uuid.UUID, response string, today time.Time) error {
	switch response {
	case types.ProliferationAccepted, types.ProliferationDismissed, types.ProliferationPostponed:
	default:
		return fmt.Errorf("%w: unknown proliferation response %q", ErrInvalidInput, response)
	}
	if _, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID); err != nil {
		return err
	}
	row := &types.ProliferationPromptResponse{
		ID:          uuid.New(),
		HabitID:     habitID,
		UserID:      userID,
		Response:    response,
		RespondedAt: today.UTC(),
	}
	if err := s.prolifRepo.Create(ctx, nil, row); err != nil {
		return fmt.Errorf("record proliferation response: %w", err)
	}
	return nil
}

func toDayCompletions(events []*types.CompletionEvent) []engine.DayCompletion {
	out := make([]engine.DayCompletion, 0, len(events))
	for _, ev := range events {
		out = append(out, engine.DayCompletion{Day: ev.Day, Completed: ev.Completed})
	}
	return out
}

func toCheckinSignals(events []*types.CompletionEvent) []engine.CheckinSignal {
	out := make([]engine.CheckinSignal, 0, len(events))
	for _, ev := range events {
		s := engine.CheckinSignal{Day: ev.Day, Completed: ev.Completed}
		if ev.WantedMore != nil {
			s.WantedMore = *ev.WantedMore
		}
		if ev.FeltEasy != nil {
			s.FeltEasy = *ev.FeltEasy
		}
		if ev.EmotionalMarker != nil {
			s.EmotionalMarker = *ev.EmotionalMarker
		}
		out = append(out, s)
	}
	return out
}

// buildStabilityInput derives the assessor aggregates from the raw event
// stream relative to the injected today.
func buildStabilityInput(habit *types.Habit, events []*types.CompletionEvent, today time.Time) engine.StabilityInput {
	windowStart := engine.DayOf(today).AddDate(0, 0, -(stabilityWindowDays - 1))

	completedDays := 0
	difficultySum := 0
	difficultyCount := 0
	markerTotal := 0
	markerPositive := 0
	for _, ev := range events {
		day := engine.DayOf(ev.Day)
		if day.Before(windowStart) || day.After(engine.DayOf(today)) {
			continue
		}
		if !ev.Completed {
			continue
		}
		completedDays++
		if ev.Difficulty != nil {
			difficultySum += *ev.Difficulty
			difficultyCount++
		}
		if ev.EmotionalMarker != nil && *ev.EmotionalMarker != "" {
			markerTotal++
			if !engine.NegativeMarker(*ev.EmotionalMarker) {
				markerPositive++
			}
		}
	}

	avgDifficulty := float64(habit.Difficulty)
	if difficultyCount > 0 {
		avgDifficulty = float64(difficultySum) / float64(difficultyCount)
	}
	positiveRate := 0.5
	if markerTotal > 0 {
		positiveRate = float64(markerPositive) / float64(markerTotal)
	}

	streak := engine.ComputeStreaks(toDayCompletions(events), today)
	totalDays := int(engine.DayOf(today).Sub(engine.DayOf(habit.CreatedAt)).Hours()/24) + 1

	return engine.StabilityInput{
		CompletionRate:        float64(completedDays) / float64(stabilityWindowDays),
		ConsecutiveDays:       streak.Current,
		AvgDifficulty:         avgDifficulty,
		PositiveEmotionRate:   positiveRate,
		TotalDaysSinceCreated: totalDays,
	}
}
