package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/types"
)

func newProgressService(env *testEnv) ProgressService {
	return NewProgressService(env.db, env.log, env.habitRepo, env.eventRepo, env.proRepo, engine.DefaultPhaseConfig())
}

// seedStableHabit writes 14 consecutive easy completed days ending today.
func seedStableHabit(t *testing.T, env *testEnv, userID uuid.UUID, today time.Time) *types.Habit {
	t.Helper()
	habit := env.createHabit(t, userID, today.AddDate(0, 0, -20))
	for off := -13; off <= 0; off++ {
		ev := &types.CompletionEvent{
			ID:         uuid.New(),
			HabitID:    habit.ID,
			UserID:     userID,
			Day:        engine.DayOf(today.AddDate(0, 0, off)),
			Completed:  true,
			Difficulty: intPtr(2),
		}
		if err := env.eventRepo.Upsert(context.Background(), nil, ev); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}
	return habit
}

func TestAssessStability(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("stable_habit_is_prompt_eligible", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newProgressService(env)
		user := env.createUser(t)
		habit := seedStableHabit(t, env, user.ID, today)

		got, err := svc.AssessStability(ctx, user.ID, habit.ID, today)
		if err != nil {
			t.Fatalf("assess: %v", err)
		}
		if !got.ReadyForProliferation {
			t.Fatalf("expected ready, got %+v", got.StabilityResult)
		}
		if !got.PromptEligible {
			t.Fatalf("expected prompt eligible with no prior responses")
		}
	})

	t.Run("recent_dismissal_suppresses_prompt", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newProgressService(env)
		user := env.createUser(t)
		habit := seedStableHabit(t, env, user.ID, today)

		if err := svc.RecordProliferationResponse(ctx, user.ID, habit.ID, types.ProliferationDismissed, today); err != nil {
			t.Fatalf("record response: %v", err)
		}
		got, err := svc.AssessStability(ctx, user.ID, habit.ID, today)
		if err != nil {
			t.Fatalf("assess: %v", err)
		}
		if !got.ReadyForProliferation {
			t.Fatalf("expected habit still ready")
		}
		if got.PromptEligible {
			t.Fatalf("expected prompt suppressed after dismissal")
		}
	})

	t.Run("young_habit_is_not_ready", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newProgressService(env)
		user := env.createUser(t)
		habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -4))
		env.completeDays(t, habit, today, -4, -3, -2, -1, 0)

		got, err := svc.AssessStability(ctx, user.ID, habit.ID, today)
		if err != nil {
			t.Fatalf("assess: %v", err)
		}
		if got.ReadyForProliferation {
			t.Fatalf("5 day old habit must not be ready")
		}
		if got.PromptEligible {
			t.Fatalf("prompt eligibility requires readiness")
		}
	})
}

func TestRecordProliferationResponse(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t)
	svc := newProgressService(env)
	user := env.createUser(t)
	habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -10))

	if err := svc.RecordProliferationResponse(ctx, user.ID, habit.ID, "maybe", today); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown response, got %v", err)
	}
	if err := svc.RecordProliferationResponse(ctx, user.ID, habit.ID, types.ProliferationPostponed, today); err != nil {
		t.Fatalf("record postponed: %v", err)
	}
	rows, err := env.proRepo.GetByHabitSince(ctx, nil, habit.ID, today.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("load responses: %v", err)
	}
	if len(rows) != 1 || rows[0].Response != types.ProliferationPostponed {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if !rows[0].RespondedAt.Equal(today) {
		t.Fatalf("expected RespondedAt %v, got %v", today, rows[0].RespondedAt)
	}
}

func TestProliferationCooldownExpiry(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t)
	svc := newProgressService(env)
	user := env.createUser(t)
	habit := seedStableHabit(t, env, user.ID, today)

	if err := svc.RecordProliferationResponse(ctx, user.ID, habit.ID, types.ProliferationPostponed, today.AddDate(0, 0, -15)); err != nil {
		t.Fatalf("record response: %v", err)
	}
	got, err := svc.AssessStability(ctx, user.ID, habit.ID, today)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if !got.PromptEligible {
		t.Fatalf("expected prompt eligible again 15 days after a postpone")
	}
}

func TestComputeStreakGraceDay(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t)
	svc := newProgressService(env)
	user := env.createUser(t)
	habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -10))

	// Three days ending yesterday; today is still pending.
	env.completeDays(t, habit, today, -3, -2, -1)

	got, err := svc.ComputeStreak(ctx, user.ID, habit.ID, today)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got.Current != 3 {
		t.Fatalf("expected grace day to keep streak at 3, got %d", got.Current)
	}
	if got.Longest != 3 {
		t.Fatalf("expected longest 3, got %d", got.Longest)
	}
}

func TestEvaluatePhaseTransition(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	env := newTestEnv(t)
	svc := newProgressService(env)
	user := env.createUser(t)
	habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -30))

	for off := -6; off <= 0; off++ {
		ev := &types.CompletionEvent{
			ID:        uuid.New(),
			HabitID:   habit.ID,
			UserID:    user.ID,
			Day:       engine.DayOf(today.AddDate(0, 0, off)),
			Completed: true,
			FeltEasy:  boolPtr(true),
		}
		if err := env.eventRepo.Upsert(ctx, nil, ev); err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	got, err := svc.EvaluatePhaseTransition(ctx, user.ID, habit.ID, today)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got.Recommendation != engine.RecommendAdvance {
		t.Fatalf("expected ADVANCE, got %s", got.Recommendation)
	}
	if got.CurrentPhase != 1 || got.PhaseCount != 5 {
		t.Fatalf("expected phase context 1/5, got %d/%d", got.CurrentPhase, got.PhaseCount)
	}
}
