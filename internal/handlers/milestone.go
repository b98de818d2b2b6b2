package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
)

type MilestoneHandler struct {
	log              *logger.Logger
	milestoneService services.MilestoneService
}

func NewMilestoneHandler(log *logger.Logger, milestoneService services.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{
		log:              log.With("handler", "MilestoneHandler"),
		milestoneService: milestoneService,
	}
}

func (h *MilestoneHandler) ListHabitMilestones(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	milestones, err := h.milestoneService.ListHabitMilestones(c.Request.Context(), userID, habitID)
	if err != nil {
		RespondServiceError(c, "load_milestones_failed", err)
		return
	}
	RespondOK(c, gin.H{"milestones": milestones})
}

// RunSweep triggers the milestone batch on demand, same code path the cron
// schedule runs nightly.
func (h *MilestoneHandler) RunSweep(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	report, err := h.milestoneService.RunMilestoneSweep(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.log.Error("RunMilestoneSweep failed", "error", err)
		RespondServiceError(c, "milestone_sweep_failed", err)
		return
	}
	RespondOK(c, gin.H{"report": report})
}
