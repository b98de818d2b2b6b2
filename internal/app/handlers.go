package app

import (
	"github.com/yungbote/habitloop-backend/internal/handlers"
	"github.com/yungbote/habitloop-backend/internal/logger"
)

type Handlers struct {
	Habit     *handlers.HabitHandler
	Checkin   *handlers.CheckinHandler
	Progress  *handlers.ProgressHandler
	Badge     *handlers.BadgeHandler
	Milestone *handlers.MilestoneHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Habit:     handlers.NewHabitHandler(log, services.Habit),
		Checkin:   handlers.NewCheckinHandler(log, services.Checkin),
		Progress:  handlers.NewProgressHandler(log, services.Progress),
		Badge:     handlers.NewBadgeHandler(log, services.Badge),
		Milestone: handlers.NewMilestoneHandler(log, services.Milestone),
	}
}
