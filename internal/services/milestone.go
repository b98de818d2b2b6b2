package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/repos"
	"github.com/yungbote/habitloop-backend/internal/types"
)

// SweepReport is the per-run outcome of the milestone batch. Errors are
// collected per habit; a failing habit never aborts the others.
type SweepReport struct {
	HabitsProcessed   int                  `json:"habits_processed"`
	MilestonesCreated int                  `json:"milestones_created"`
	Created           []*types.Milestone   `json:"created,omitempty"`
	Errors            map[uuid.UUID]string `json:"errors,omitempty"`
}

type SweepConfig struct {
	Workers      int
	HabitTimeout time.Duration
}

func DefaultSweepConfig() SweepConfig {
	return SweepConfig{Workers: 8, HabitTimeout: 20 * time.Second}
}

type MilestoneService interface {
	ListHabitMilestones(ctx context.Context, userID, habitID uuid.UUID) ([]*types.Milestone, error)
	// RunMilestoneSweep recomputes streaks for every active habit and records
	// newly reached milestones. Idempotent: replaying it any number of times
	// on the same day yields the same milestone set.
	RunMilestoneSweep(ctx context.Context, today time.Time) (*SweepReport, error)
}

type milestoneService struct {
	db            *gorm.DB
	log           *logger.Logger
	habitRepo     repos.HabitRepo
	eventRepo     repos.CompletionEventRepo
	milestoneRepo repos.MilestoneRepo
	celebRepo     repos.CelebrationEventRepo
	narrative     NarrativeService
	cfg           SweepConfig
}

func NewMilestoneService(
	db *gorm.DB,
	log *logger.Logger,
	habitRepo repos.HabitRepo,
	eventRepo repos.CompletionEventRepo,
	milestoneRepo repos.MilestoneRepo,
	celebRepo repos.CelebrationEventRepo,
	narrative NarrativeService,
	cfg SweepConfig,
) MilestoneService {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultSweepConfig().Workers
	}
	if cfg.HabitTimeout <= 0 {
		cfg.HabitTimeout = DefaultSweepConfig().HabitTimeout
	}
	serviceLog := log.With("service", "MilestoneService")
	return &milestoneService{
		db:            db,
		log:           serviceLog,
		habitRepo:     habitRepo,
		eventRepo:     eventRepo,
		milestoneRepo: milestoneRepo,
		celebRepo:     celebRepo,
		narrative:     narrative,
		cfg:           cfg,
	}
}

func (s *milestoneService) ListHabitMilestones(ctx context.Context, userID, habitID uuid.UUID) ([]*types.Milestone, error) {
	if _, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID); err != nil {
		return nil, err
	}
	return s.milestoneRepo.GetByHabitID(ctx, nil, habitID)
}

func (s *milestoneService) RunMilestoneSweep(ctx context.Context, today time.Time) (*SweepReport, error) {
	habits, err := s.habitRepo.ListByStatus(ctx, nil, types.HabitStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active habits: %w", err)
	}

	report := &SweepReport{Errors: make(map[uuid.UUID]string)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for _, habit := range habits {
		habit := habit
		g.Go(func() error {
			habitCtx, cancel := context.WithTimeout(gctx, s.cfg.HabitTimeout)
			defer cancel()

			created, err := s.sweepHabit(habitCtx, habit, today)

			mu.Lock()
			defer mu.Unlock()
			report.HabitsProcessed++
			if err != nil {
				// Recorded and skipped; milestone inserts are idempotent so
				// the next scheduled run picks this habit up again.
				report.Errors[habit.ID] = err.Error()
				s.log.Warn("Milestone sweep failed for habit", "habit_id", habit.ID, "error", err)
				return nil
			}
			report.MilestonesCreated += len(created)
			report.Created = append(report.Created, created...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("Milestone sweep finished",
		"habits_processed", report.HabitsProcessed,
		"milestones_created", report.MilestonesCreated,
		"failed_habits", len(report.Errors),
	)
	return report, nil
}

func (s *milestoneService) sweepHabit(ctx context.Context, habit *types.Habit, today time.Time) ([]*types.Milestone, error) {
	events, err := s.eventRepo.GetByHabitID(ctx, nil, habit.ID)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	streak := engine.ComputeStreaks(toDayCompletions(events), today)

	existing, err := s.milestoneRepo.GetByHabitID(ctx, nil, habit.ID)
	if err != nil {
		return nil, fmt.Errorf("load milestones: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, m := range existing {
		have[m.Type] = true
	}

	var created []*types.Milestone
	for _, threshold := range engine.MilestoneThresholds() {
		if streak.Current < threshold.Days || have[threshold.Type] {
			continue
		}

		narrative := ""
		if s.narrative != nil {
			text, nErr := s.narrative.MilestoneNarrative(ctx, habit.Name, threshold.Type, threshold.Days)
			if nErr != nil {
				s.log.Warn("Milestone narrative generation failed", "habit_id", habit.ID, "type", threshold.Type, "error", nErr)
			} else {
				narrative = text
			}
		}

		row := &types.Milestone{
			ID:         uuid.New(),
			HabitID:    habit.ID,
			Type:       threshold.Type,
			StreakDays: streak.Current,
			Narrative:  narrative,
			AchievedAt: today.UTC(),
		}
		inserted, err := s.milestoneRepo.InsertIfAbsent(ctx, nil, row)
		if err != nil {
			return created, fmt.Errorf("insert milestone %s: %w", threshold.Type, err)
		}
		if !inserted {
			// A parallel run already recorded it.
			continue
		}
		created = append(created, row)

		habitID := habit.ID
		celebration := &types.CelebrationEvent{
			ID:      uuid.New(),
			UserID:  habit.UserID,
			HabitID: &habitID,
			Kind:    types.CelebrationKindMilestone,
			Message: fmt.Sprintf("%s reached %d days", habit.Name, threshold.Days),
		}
		if _, cErr := s.celebRepo.Create(ctx, nil, []*types.CelebrationEvent{celebration}); cErr != nil {
			s.log.Warn("Failed to record milestone celebration", "habit_id", habit.ID, "error", cErr)
		}
	}
	return created, nil
}
