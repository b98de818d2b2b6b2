package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/types"
)

func newCheckinService(t *testing.T, env *testEnv) CheckinService {
	t.Helper()
	progress := NewProgressService(env.db, env.log, env.habitRepo, env.eventRepo, env.proRepo, engine.DefaultPhaseConfig())
	badges := newBadgeService(t, env, &stubNarrative{})
	return NewCheckinService(env.db, env.log, env.habitRepo, env.eventRepo, env.celebRepo, progress, badges, engine.DefaultPhaseConfig())
}

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestRecordCheckin(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)

	t.Run("same_day_checkin_is_corrected_not_duplicated", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newCheckinService(t, env)
		user := env.createUser(t)
		habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -10))

		first, err := svc.RecordCheckin(ctx, user.ID, habit.ID, CheckinInput{Completed: true, Difficulty: intPtr(2)}, today)
		if err != nil {
			t.Fatalf("first checkin: %v", err)
		}
		if first.Streak.Current != 1 {
			t.Fatalf("expected streak 1, got %d", first.Streak.Current)
		}

		second, err := svc.RecordCheckin(ctx, user.ID, habit.ID, CheckinInput{Completed: false}, today)
		if err != nil {
			t.Fatalf("second checkin: %v", err)
		}
		if second.Streak.Current != 0 {
			t.Fatalf("expected streak 0 after correction, got %d", second.Streak.Current)
		}

		rows, err := env.eventRepo.GetByHabitID(ctx, nil, habit.ID)
		if err != nil {
			t.Fatalf("load events: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected one event row for the day, got %d", len(rows))
		}
		if rows[0].Completed {
			t.Fatalf("correction did not overwrite completed flag")
		}
	})

	t.Run("advance_moves_phase_up_one", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newCheckinService(t, env)
		user := env.createUser(t)
		habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -30))

		// Six easy completed days seeded; the seventh arrives via the service.
		for off := -6; off <= -1; off++ {
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

		res, err := svc.RecordCheckin(ctx, user.ID, habit.ID, CheckinInput{Completed: true, FeltEasy: boolPtr(true)}, today)
		if err != nil {
			t.Fatalf("checkin: %v", err)
		}
		if res.Recommendation != engine.RecommendAdvance {
			t.Fatalf("expected ADVANCE, got %s", res.Recommendation)
		}
		if !res.PhaseChanged || res.CurrentPhase != 2 {
			t.Fatalf("expected phase change 1 -> 2, got changed=%v phase=%d", res.PhaseChanged, res.CurrentPhase)
		}

		habits, err := env.habitRepo.GetByIDs(ctx, nil, []uuid.UUID{habit.ID})
		if err != nil {
			t.Fatalf("reload habit: %v", err)
		}
		if habits[0].CurrentPhase != 2 {
			t.Fatalf("phase not persisted, got %d", habits[0].CurrentPhase)
		}
	})

	t.Run("retreat_at_phase_one_is_clamped", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newCheckinService(t, env)
		user := env.createUser(t)
		habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -30))

		for _, off := range []int{-2, -1} {
			ev := &types.CompletionEvent{
				ID:              uuid.New(),
				HabitID:         habit.ID,
				UserID:          user.ID,
				Day:             engine.DayOf(today.AddDate(0, 0, off)),
				Completed:       true,
				EmotionalMarker: strPtr(types.EmotionalMarkerFrustration),
			}
			if err := env.eventRepo.Upsert(ctx, nil, ev); err != nil {
				t.Fatalf("seed event: %v", err)
			}
		}

		res, err := svc.RecordCheckin(ctx, user.ID, habit.ID, CheckinInput{Completed: true}, today)
		if err != nil {
			t.Fatalf("checkin: %v", err)
		}
		if res.Recommendation != engine.RecommendRetreat {
			t.Fatalf("expected RETREAT, got %s", res.Recommendation)
		}
		if res.PhaseChanged || res.CurrentPhase != 1 {
			t.Fatalf("phase 1 must not go below 1, got changed=%v phase=%d", res.PhaseChanged, res.CurrentPhase)
		}
	})

	t.Run("streak_multiple_of_seven_celebrates", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newCheckinService(t, env)
		user := env.createUser(t)
		habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -30))
		env.completeDays(t, habit, today, -6, -5, -4, -3, -2, -1)

		if _, err := svc.RecordCheckin(ctx, user.ID, habit.ID, CheckinInput{Completed: true}, today); err != nil {
			t.Fatalf("checkin: %v", err)
		}
		celebs, err := env.celebRepo.GetByUserID(ctx, nil, user.ID)
		if err != nil {
			t.Fatalf("load celebrations: %v", err)
		}
		foundStreak := false
		for _, c := range celebs {
			if c.Kind == types.CelebrationKindStreak {
				foundStreak = true
			}
		}
		if !foundStreak {
			t.Fatalf("expected a streak celebration at 7 days")
		}
	})

	t.Run("rejects_bad_input_and_wrong_owner", func(t *testing.T) {
		env := newTestEnv(t)
		svc := newCheckinService(t, env)
		user := env.createUser(t)
		other := env.createUser(t)
		habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -10))

		_, err := svc.RecordCheckin(ctx, user.ID, habit.ID, CheckinInput{Completed: true, Difficulty: intPtr(9)}, today)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		_, err = svc.RecordCheckin(ctx, other.ID, habit.ID, CheckinInput{Completed: true}, today)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		_, err = svc.RecordCheckin(ctx, user.ID, uuid.New(), CheckinInput{Completed: true}, today)
		if !errors.Is(err, ErrHabitNotFound) {
			t.Fatalf("expected ErrHabitNotFound, got %v", err)
		}
	})
}

func TestCompletionEventUpsertConcurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	today := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	user := env.createUser(t)
	habit := env.createHabit(t, user.ID, today.AddDate(0, 0, -10))

	const workers = 4
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(difficulty int) {
			defer wg.Done()
			errCh <- env.eventRepo.Upsert(ctx, nil, &types.CompletionEvent{
				ID:         uuid.New(),
				HabitID:    habit.ID,
				UserID:     user.ID,
				Day:        engine.DayOf(today),
				Completed:  true,
				Difficulty: &difficulty,
			})
		}(i + 1)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	events, err := env.eventRepo.GetByHabitID(ctx, nil, habit.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one row for the day, got %d", len(events))
	}
	if !events[0].Completed {
		t.Fatalf("expected winning write to keep completed=true")
	}
}
