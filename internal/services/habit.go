package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/repos"
	"github.com/yungbote/habitloop-backend/internal/types"
)

type CreateHabitInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PhaseCount  int    `json:"phase_count"`
	Difficulty  int    `json:"difficulty"`
}

type UpdateHabitInput struct {
	Status *string `json:"status,omitempty"`
}

type HabitService interface {
	CreateHabit(ctx context.Context, userID uuid.UUID, input CreateHabitInput) (*types.Habit, error)
	GetHabit(ctx context.Context, userID, habitID uuid.UUID) (*types.Habit, error)
	ListHabits(ctx context.Context, userID uuid.UUID) ([]*types.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID uuid.UUID, input UpdateHabitInput) (*types.Habit, error)
}

type habitService struct {
	db        *gorm.DB
	log       *logger.Logger
	habitRepo repos.HabitRepo
}

func NewHabitService(db *gorm.DB, log *logger.Logger, habitRepo repos.HabitRepo) HabitService {
	serviceLog := log.With("service", "HabitService")
	return &habitService{db: db, log: serviceLog, habitRepo: habitRepo}
}

func (s *habitService) CreateHabit(ctx context.Context, userID uuid.UUID, input CreateHabitInput) (*types.Habit, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	phaseCount := input.PhaseCount
	if phaseCount <= 0 {
		phaseCount = 3
	}
	difficulty := input.Difficulty
	if difficulty <= 0 {
		difficulty = 3
	}
	if difficulty > 5 {
		return nil, fmt.Errorf("%w: difficulty must be 1-5", ErrInvalidInput)
	}

	habit := &types.Habit{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         input.Name,
		Description:  input.Description,
		Status:       types.HabitStatusActive,
		CurrentPhase: 1,
		PhaseCount:   phaseCount,
		Difficulty:   difficulty,
	}
	if _, err := s.habitRepo.Create(ctx, nil, []*types.Habit{habit}); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return habit, nil
}

func (s *habitService) GetHabit(ctx context.Context, userID, habitID uuid.UUID) (*types.Habit, error) {
	return loadOwnedHabit(ctx, s.habitRepo, userID, habitID)
}

func (s *habitService) ListHabits(ctx context.Context, userID uuid.UUID) ([]*types.Habit, error) {
	return s.habitRepo.GetByUserID(ctx, nil, userID)
}

func (s *habitService) UpdateHabit(ctx context.Context, userID, habitID uuid.UUID, input UpdateHabitInput) (*types.Habit, error) {
	habit, err := loadOwnedHabit(ctx, s.habitRepo, userID, habitID)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		switch *input.Status {
		case types.HabitStatusActive, types.HabitStatusPaused, types.HabitStatusCompleted, types.HabitStatusArchived:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
		}
		if err := s.habitRepo.UpdateStatus(ctx, nil, habitID, *input.Status); err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
		habit.Status = *input.Status
	}
	return habit, nil
}
