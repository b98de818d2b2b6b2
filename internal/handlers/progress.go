package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             log.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

func (h *ProgressHandler) GetStreak(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	streak, err := h.progressService.ComputeStreak(c.Request.Context(), userID, habitID, time.Now().UTC())
	if err != nil {
		RespondServiceError(c, "compute_streak_failed", err)
		return
	}
	RespondOK(c, gin.H{"streak": streak})
}

func (h *ProgressHandler) GetStability(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	assessment, err := h.progressService.AssessStability(c.Request.Context(), userID, habitID, time.Now().UTC())
	if err != nil {
		RespondServiceError(c, "assess_stability_failed", err)
		return
	}
	RespondOK(c, gin.H{"stability": assessment})
}

func (h *ProgressHandler) GetPhase(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	assessment, err := h.progressService.EvaluatePhaseTransition(c.Request.Context(), userID, habitID, time.Now().UTC())
	if err != nil {
		RespondServiceError(c, "evaluate_phase_failed", err)
		return
	}
	RespondOK(c, gin.H{"phase": assessment})
}

func (h *ProgressHandler) RecordProliferationResponse(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.progressService.RecordProliferationResponse(c.Request.Context(), userID, habitID, body.Response, time.Now().UTC()); err != nil {
		RespondServiceError(c, "record_response_failed", err)
		return
	}
	RespondOK(c, gin.H{"recorded": true})
}
