package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/repos"
	"github.com/yungbote/habitloop-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Habit{},
		&types.CompletionEvent{},
		&types.CelebrationEvent{},
		&types.UserBadge{},
		&types.Milestone{},
		&types.ProliferationPromptResponse{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	habitRepo repos.HabitRepo
	eventRepo repos.CompletionEventRepo
	celebRepo repos.CelebrationEventRepo
	badgeRepo repos.UserBadgeRepo
	mileRepo  repos.MilestoneRepo
	proRepo   repos.ProliferationRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	return &testEnv{
		db:        db,
		log:       log,
		userRepo:  repos.NewUserRepo(db, log),
		habitRepo: repos.NewHabitRepo(db, log),
		eventRepo: repos.NewCompletionEventRepo(db, log),
		celebRepo: repos.NewCelebrationEventRepo(db, log),
		badgeRepo: repos.NewUserBadgeRepo(db, log),
		mileRepo:  repos.NewMilestoneRepo(db, log),
		proRepo:   repos.NewProliferationRepo(db, log),
	}
}

func (e *testEnv) createUser(t *testing.T) *types.User {
	t.Helper()
	user := &types.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		DisplayName: "Test User",
	}
	if _, err := e.userRepo.Create(context.Background(), nil, []*types.User{user}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createHabit(t *testing.T, userID uuid.UUID, createdAt time.Time) *types.Habit {
	t.Helper()
	habit := &types.Habit{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         "morning run",
		Status:       types.HabitStatusActive,
		CurrentPhase: 1,
		PhaseCount:   5,
		Difficulty:   2,
		CreatedAt:    createdAt,
	}
	if _, err := e.habitRepo.Create(context.Background(), nil, []*types.Habit{habit}); err != nil {
		t.Fatalf("create habit: %v", err)
	}
	return habit
}

// completeDays writes completed events for the given day offsets from base.
func (e *testEnv) completeDays(t *testing.T, habit *types.Habit, base time.Time, offsets ...int) {
	t.Helper()
	for _, off := range offsets {
		ev := &types.CompletionEvent{
			ID:        uuid.New(),
			HabitID:   habit.ID,
			UserID:    habit.UserID,
			Day:       engine.DayOf(base.AddDate(0, 0, off)),
			Completed: true,
		}
		if err := e.eventRepo.Upsert(context.Background(), nil, ev); err != nil {
			t.Fatalf("upsert event: %v", err)
		}
	}
}

// stubNarrative counts calls and can be told to fail, standing in for the AI
// collaborator.
type stubNarrative struct {
	fail  bool
	calls int
}

func (s *stubNarrative) MilestoneNarrative(ctx context.Context, habitName, milestoneType string, streakDays int) (string, error) {
	s.calls++
	if s.fail {
		return "", fmt.Errorf("narrative backend unavailable")
	}
	return fmt.Sprintf("%s: %d days of %s", milestoneType, streakDays, habitName), nil
}

func (s *stubNarrative) BadgeNarrative(ctx context.Context, badge engine.Badge) (string, error) {
	s.calls++
	if s.fail {
		return "", fmt.Errorf("narrative backend unavailable")
	}
	return "congrats on " + badge.Name, nil
}
