package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/habitloop-backend/internal/types"
)

func TestHabitService(t *testing.T) {
	ctx := context.Background()

	t.Run("create_applies_defaults", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewHabitService(env.db, env.log, env.habitRepo)
		user := env.createUser(t)

		habit, err := svc.CreateHabit(ctx, user.ID, CreateHabitInput{Name: "read"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if habit.Status != types.HabitStatusActive {
			t.Fatalf("expected active status, got %s", habit.Status)
		}
		if habit.CurrentPhase != 1 || habit.PhaseCount != 3 || habit.Difficulty != 3 {
			t.Fatalf("unexpected defaults: phase=%d count=%d difficulty=%d", habit.CurrentPhase, habit.PhaseCount, habit.Difficulty)
		}
	})

	t.Run("create_rejects_bad_input", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewHabitService(env.db, env.log, env.habitRepo)
		user := env.createUser(t)

		if _, err := svc.CreateHabit(ctx, user.ID, CreateHabitInput{}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
		}
		if _, err := svc.CreateHabit(ctx, user.ID, CreateHabitInput{Name: "read", Difficulty: 6}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for difficulty 6, got %v", err)
		}
	})

	t.Run("update_status_and_listing", func(t *testing.T) {
		env := newTestEnv(t)
		svc := NewHabitService(env.db, env.log, env.habitRepo)
		user := env.createUser(t)

		habit, err := svc.CreateHabit(ctx, user.ID, CreateHabitInput{Name: "stretch"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		paused := types.HabitStatusPaused
		updated, err := svc.UpdateHabit(ctx, user.ID, habit.ID, UpdateHabitInput{Status: &paused})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != types.HabitStatusPaused {
			t.Fatalf("expected paused, got %s", updated.Status)
		}

		bogus := "resting"
		if _, err := svc.UpdateHabit(ctx, user.ID, habit.ID, UpdateHabitInput{Status: &bogus}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
		}

		other := env.createUser(t)
		if _, err := svc.GetHabit(ctx, other.ID, habit.ID); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}

		listed, err := svc.ListHabits(ctx, user.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected one habit, got %d", len(listed))
		}
	})
}
