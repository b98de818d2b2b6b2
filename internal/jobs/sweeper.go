package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
)

// Sweeper runs the milestone sweep on a cron schedule. The sweep is
// idempotent, so an overlapping manual run via the admin endpoint is safe.
type Sweeper struct {
	log       *logger.Logger
	milestone services.MilestoneService
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
}

func NewSweeper(log *logger.Logger, milestone services.MilestoneService, schedule string, timeout time.Duration) *Sweeper {
	if schedule == "" {
		schedule = "@daily"
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Sweeper{
		log:       log.With("component", "MilestoneSweeper"),
		milestone: milestone,
		schedule:  schedule,
		timeout:   timeout,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New()
	if err := c.AddFunc(s.schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		report, err := s.milestone.RunMilestoneSweep(runCtx, time.Now().UTC())
		if err != nil {
			s.log.Error("Scheduled milestone sweep failed", "error", err)
			return
		}
		s.log.Info("Scheduled milestone sweep completed",
			"habits_processed", report.HabitsProcessed,
			"milestones_created", report.MilestonesCreated,
		)
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.log.Info("Milestone sweeper started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
