package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
)

type BadgeHandler struct {
	log          *logger.Logger
	badgeService services.BadgeService
}

func NewBadgeHandler(log *logger.Logger, badgeService services.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		log:          log.With("handler", "BadgeHandler"),
		badgeService: badgeService,
	}
}

func (h *BadgeHandler) Catalog(c *gin.Context) {
	RespondOK(c, gin.H{"badges": h.badgeService.Catalog()})
}

func (h *BadgeHandler) ListUserBadges(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	badges, err := h.badgeService.ListUserBadges(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListUserBadges failed", "error", err, "user_id", userID)
		RespondServiceError(c, "load_badges_failed", err)
		return
	}
	RespondOK(c, gin.H{"badges": badges})
}

func (h *BadgeHandler) CheckUnlocks(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	unlocked, err := h.badgeService.CheckBadgeUnlocks(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		h.log.Error("CheckBadgeUnlocks failed", "error", err, "user_id", userID)
		RespondServiceError(c, "badge_check_failed", err)
		return
	}
	RespondOK(c, gin.H{"unlocked": unlocked})
}
