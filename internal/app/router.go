package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitloop-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:   middleware.Auth,
		HabitHandler:     handlers.Habit,
		CheckinHandler:   handlers.Checkin,
		ProgressHandler:  handlers.Progress,
		BadgeHandler:     handlers.Badge,
		MilestoneHandler: handlers.Milestone,
		AllowOrigins:     cfg.AllowOrigins,
	})
}
