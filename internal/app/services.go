package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
)

type Services struct {
	Narrative services.NarrativeService
	Habit     services.HabitService
	Progress  services.ProgressService
	Badge     services.BadgeService
	Milestone services.MilestoneService
	Checkin   services.CheckinService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	var ai services.AIClient
	if cfg.NarrativeAI {
		client, err := services.NewAIClient(log)
		if err != nil {
			return Services{}, fmt.Errorf("init ai client: %w", err)
		}
		ai = client
	}
	narrative := services.NewNarrativeService(log, ai)

	habitService := services.NewHabitService(db, log, repos.Habit)
	progressService := services.NewProgressService(db, log, repos.Habit, repos.CompletionEvent, repos.Proliferation, cfg.PhaseConfig)

	badgeService, err := services.NewBadgeService(db, log, repos.Habit, repos.CompletionEvent, repos.Celebration, repos.UserBadge, narrative)
	if err != nil {
		return Services{}, fmt.Errorf("init badge service: %w", err)
	}

	milestoneService := services.NewMilestoneService(db, log, repos.Habit, repos.CompletionEvent, repos.Milestone, repos.Celebration, narrative, cfg.SweepConfig)
	checkinService := services.NewCheckinService(db, log, repos.Habit, repos.CompletionEvent, repos.Celebration, progressService, badgeService, cfg.PhaseConfig)

	return Services{
		Narrative: narrative,
		Habit:     habitService,
		Progress:  progressService,
		Badge:     badgeService,
		Milestone: milestoneService,
		Checkin:   checkinService,
	}, nil
}
