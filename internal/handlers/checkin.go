package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
)

type CheckinHandler struct {
	log            *logger.Logger
	checkinService services.CheckinService
}

func NewCheckinHandler(log *logger.Logger, checkinService services.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		log:            log.With("handler", "CheckinHandler"),
		checkinService: checkinService,
	}
}

func (h *CheckinHandler) RecordCheckin(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	var input services.CheckinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.checkinService.RecordCheckin(c.Request.Context(), userID, habitID, input, time.Now().UTC())
	if err != nil {
		h.log.Error("RecordCheckin failed", "error", err, "user_id", userID, "habit_id", habitID)
		RespondServiceError(c, "checkin_failed", err)
		return
	}
	RespondOK(c, result)
}
