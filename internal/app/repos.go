package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	Habit           repos.HabitRepo
	CompletionEvent repos.CompletionEventRepo
	Celebration     repos.CelebrationEventRepo
	UserBadge       repos.UserBadgeRepo
	Milestone       repos.MilestoneRepo
	Proliferation   repos.ProliferationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Habit:           repos.NewHabitRepo(db, log),
		CompletionEvent: repos.NewCompletionEventRepo(db, log),
		Celebration:     repos.NewCelebrationEventRepo(db, log),
		UserBadge:       repos.NewUserBadgeRepo(db, log),
		Milestone:       repos.NewMilestoneRepo(db, log),
		Proliferation:   repos.NewProliferationRepo(db, log),
	}
}
