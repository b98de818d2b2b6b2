package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitloop-backend/internal/handlers"
	"github.com/yungbote/habitloop-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware   *middleware.AuthMiddleware
	HabitHandler     *handlers.HabitHandler
	CheckinHandler   *handlers.CheckinHandler
	ProgressHandler  *handlers.ProgressHandler
	BadgeHandler     *handlers.BadgeHandler
	MilestoneHandler *handlers.MilestoneHandler
	AllowOrigins     []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Habits
	protected.POST("/habits", cfg.HabitHandler.Create)
	protected.GET("/habits", cfg.HabitHandler.List)
	protected.GET("/habits/:id", cfg.HabitHandler.Get)
	protected.PATCH("/habits/:id", cfg.HabitHandler.Update)

	// Check-ins and progress
	protected.POST("/habits/:id/checkin", cfg.CheckinHandler.RecordCheckin)
	protected.GET("/habits/:id/streak", cfg.ProgressHandler.GetStreak)
	protected.GET("/habits/:id/stability", cfg.ProgressHandler.GetStability)
	protected.GET("/habits/:id/phase", cfg.ProgressHandler.GetPhase)
	protected.POST("/habits/:id/proliferation-response", cfg.ProgressHandler.RecordProliferationResponse)

	// Badges
	protected.GET("/badges", cfg.BadgeHandler.Catalog)
	protected.GET("/user/badges", cfg.BadgeHandler.ListUserBadges)
	protected.POST("/user/badges/check", cfg.BadgeHandler.CheckUnlocks)

	// Milestones
	protected.GET("/habits/:id/milestones", cfg.MilestoneHandler.ListHabitMilestones)
	protected.POST("/admin/milestone-sweep", cfg.MilestoneHandler.RunSweep)

	return router
}
