package app

import (
	"strings"
	"time"

	"github.com/yungbote/habitloop-backend/internal/engine"
	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/services"
	"github.com/yungbote/habitloop-backend/internal/utils"
)

type Config struct {
	JWTSecretKey  string
	AllowOrigins  []string
	PhaseConfig   engine.PhaseConfig
	SweepConfig   services.SweepConfig
	SweepSchedule string
	SweepTimeout  time.Duration
	NarrativeAI   bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)

	phaseCfg := engine.DefaultPhaseConfig()
	phaseCfg.WindowDays = utils.GetEnvAsInt("PHASE_WINDOW_DAYS", phaseCfg.WindowDays, log)
	phaseCfg.AdvanceRate = utils.GetEnvAsFloat("PHASE_ADVANCE_RATE", phaseCfg.AdvanceRate, log)
	phaseCfg.MinAdvanceSignals = utils.GetEnvAsInt("PHASE_MIN_ADVANCE_SIGNALS", phaseCfg.MinAdvanceSignals, log)
	phaseCfg.RetreatMarkerCount = utils.GetEnvAsInt("PHASE_RETREAT_MARKER_COUNT", phaseCfg.RetreatMarkerCount, log)
	phaseCfg.MaxMissedDays = utils.GetEnvAsInt("PHASE_MAX_MISSED_DAYS", phaseCfg.MaxMissedDays, log)

	sweepCfg := services.DefaultSweepConfig()
	sweepCfg.Workers = utils.GetEnvAsInt("SWEEP_WORKERS", sweepCfg.Workers, log)
	sweepCfg.HabitTimeout = time.Duration(utils.GetEnvAsInt("SWEEP_HABIT_TIMEOUT_SECONDS", int(sweepCfg.HabitTimeout.Seconds()), log)) * time.Second

	sweepSchedule := utils.GetEnv("SWEEP_SCHEDULE", "@daily", log)
	sweepTimeout := time.Duration(utils.GetEnvAsInt("SWEEP_TIMEOUT_SECONDS", 600, log)) * time.Second

	narrativeAI := utils.GetEnv("NARRATIVE_AI_ENABLED", "false", log) == "true"

	return Config{
		JWTSecretKey:  jwtSecretKey,
		AllowOrigins:  strings.Split(origins, ","),
		PhaseConfig:   phaseCfg,
		SweepConfig:   sweepCfg,
		SweepSchedule: sweepSchedule,
		SweepTimeout:  sweepTimeout,
		NarrativeAI:   narrativeAI,
	}
}
