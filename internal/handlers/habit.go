package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/requestdata"
	"github.com/yungbote/habitloop-backend/internal/services"
)

type HabitHandler struct {
	log          *logger.Logger
	habitService services.HabitService
}

func NewHabitHandler(log *logger.Logger, habitService services.HabitService) *HabitHandler {
	return &HabitHandler{
		log:          log.With("handler", "HabitHandler"),
		habitService: habitService,
	}
}

// requireUser pulls the authenticated user from request context. Handlers sit
// behind RequireAuth, so a miss here means broken wiring rather than a bad
// request.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func habitIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_habit_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var input services.CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	habit, err := h.habitService.CreateHabit(c.Request.Context(), userID, input)
	if err != nil {
		h.log.Error("CreateHabit failed", "error", err, "user_id", userID)
		RespondServiceError(c, "create_habit_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"habit": habit})
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	habit, err := h.habitService.GetHabit(c.Request.Context(), userID, habitID)
	if err != nil {
		RespondServiceError(c, "load_habit_failed", err)
		return
	}
	RespondOK(c, gin.H{"habit": habit})
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habits, err := h.habitService.ListHabits(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListHabits failed", "error", err, "user_id", userID)
		RespondServiceError(c, "load_habits_failed", err)
		return
	}
	RespondOK(c, gin.H{"habits": habits})
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}
	var input services.UpdateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	habit, err := h.habitService.UpdateHabit(c.Request.Context(), userID, habitID, input)
	if err != nil {
		RespondServiceError(c, "update_habit_failed", err)
		return
	}
	RespondOK(c, gin.H{"habit": habit})
}
