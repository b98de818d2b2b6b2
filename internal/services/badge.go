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

// UnlockedBadge pairs the catalog entry with its durable unlock row.
type UnlockedBadge struct {
	Badge      engine.Badge `json:"badge"`
	Narrative  string       `json:"narrative"`
	UnlockedAt time.Time    `json:"unlocked_at"`
}

type BadgeService interface {
	// Catalog returns the fixed badge set.
	Catalog() []engine.Badge
	// ListUserBadges returns all unlock rows for the user.
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*types.UserBadge, error)
	// CheckBadgeUnlocks evaluates every not-yet-held badge against current
	// aggregates and returns only the badges newly unlocked by this call.
	CheckBadgeUnlocks(ctx context.Context, userID uuid.UUID, today time.Time) ([]UnlockedBadge, error)
}

type badgeService struct {
	db              *gorm.DB
	log             *logger.Logger
	catalog         []engine.Badge
	habitRepo       repos.HabitRepo
	eventRepo       repos.CompletionEventRepo
	celebrationRepo repos.CelebrationEventRepo
	userBadgeRepo   repos.UserBadgeRepo
	narrative       NarrativeService
}

func NewBadgeService(
	db *gorm.DB,
	log *logger.Logger,
	habitRepo repos.HabitRepo,
	eventRepo repos.CompletionEventRepo,
	celebrationRepo repos.CelebrationEventRepo,
	userBadgeRepo repos.UserBadgeRepo,
	narrative NarrativeService,
) (BadgeService, error) {
	catalog := engine.Catalog()
	if err := engine.ValidateCatalog(catalog); err != nil {
		return nil, fmt.Errorf("badge catalog: %w", err)
	}
	serviceLog := log.With("service", "BadgeService")
	return &badgeService{
		db:              db,
		log:             serviceLog,
		catalog:         catalog,
		habitRepo:       habitRepo,
		eventRepo:       eventRepo,
		celebrationRepo: celebrationRepo,
		userBadgeRepo:   userBadgeRepo,
		narrative:       narrative,
	}, nil
}

func (s *badgeService) Catalog() []engine.Badge {
	return s.catalog
}

func (s *badgeService) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]*types.UserBadge, error) {
	return s.userBadgeRepo.GetByUserID(ctx, nil, userID)
}

func (s *badgeService) CheckBadgeUnlocks(ctx context.Context, userID uuid.UUID, today time.Time) ([]UnlockedBadge, error) {
	existing, err := s.userBadgeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load existing badges: %w", err)
	}
	held := make(map[string]bool, len(existing))
	for _, b := range existing {
		held[b.BadgeCode] = true
	}

	agg, err := s.loadAggregates(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	var unlocked []UnlockedBadge
	for _, badge := range s.catalog {
		if held[badge.Code] {
			continue
		}
		if !engine.ConditionMet(badge.Condition, *agg) {
			continue
		}

		narrative := ""
		if s.narrative != nil {
			text, nErr := s.narrative.BadgeNarrative(ctx, badge)
			if nErr != nil {
				// Unlock still happens; the text can be regenerated later.
				s.log.Warn("Badge narrative generation failed", "badge_code", badge.Code, "error", nErr)
			} else {
				narrative = text
			}
		}

		row := &types.UserBadge{
			ID:         uuid.New(),
			UserID:     userID,
			BadgeCode:  badge.Code,
			Narrative:  narrative,
			UnlockedAt: today.UTC(),
		}
		created, err := s.userBadgeRepo.InsertIfAbsent(ctx, nil, row)
		if err != nil {
			return nil, fmt.Errorf("insert user badge %q: %w", badge.Code, err)
		}
		if !created {
			// A concurrent evaluation won the race; not ours to report.
			continue
		}
		unlocked = append(unlocked, UnlockedBadge{
			Badge:      badge,
			Narrative:  narrative,
			UnlockedAt: row.UnlockedAt,
		})

		celebration := &types.CelebrationEvent{
			ID:      uuid.New(),
			UserID:  userID,
			Kind:    types.CelebrationKindBadge,
			Message: fmt.Sprintf("Unlocked badge %s", badge.Name),
		}
		if _, cErr := s.celebrationRepo.Create(ctx, nil, []*types.CelebrationEvent{celebration}); cErr != nil {
			s.log.Warn("Failed to record badge celebration", "badge_code", badge.Code, "error", cErr)
		}
	}
	return unlocked, nil
}

// loadAggregates re-reads everything from the event store; there is no cached
// derived state that could drift.
func (s *badgeService) loadAggregates(ctx context.Context, userID uuid.UUID, today time.Time) (*engine.UserAggregates, error) {
	habitCount, err := s.habitRepo.CountByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count habits: %w", err)
	}
	completions, err := s.eventRepo.CountCompletedByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}
	celebrations, err := s.celebrationRepo.CountByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count celebrations: %w", err)
	}
	perfectDays, err := s.eventRepo.CountPerfectDays(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("count perfect days: %w", err)
	}
	maxPhase, err := s.habitRepo.MaxPhaseByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("max phase: %w", err)
	}

	habits, err := s.habitRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	maxStreak := 0
	for _, habit := range habits {
		events, err := s.eventRepo.GetByHabitID(ctx, nil, habit.ID)
		if err != nil {
			return nil, fmt.Errorf("load events for habit %s: %w", habit.ID, err)
		}
		streak := engine.ComputeStreaks(toDayCompletions(events), today)
		if streak.Current > maxStreak {
			maxStreak = streak.Current
		}
	}

	return &engine.UserAggregates{
		HabitCount:        int(habitCount),
		TotalCompletions:  int(completions),
		TotalCelebrations: int(celebrations),
		MaxCurrentStreak:  maxStreak,
		PerfectDays:       int(perfectDays),
		MaxPhase:          maxPhase,
	}, nil
}
