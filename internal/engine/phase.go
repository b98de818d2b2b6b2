package engine

import (
	"sort"
	"time"
)

type Recommendation string

const (
	RecommendAdvance Recommendation = "ADVANCE"
	RecommendRetreat Recommendation = "RETREAT"
	RecommendHold    Recommendation = "HOLD"
)

// CheckinSignal is one check-in projected to the fields the detector reads.
type CheckinSignal struct {
	Day             time.Time
	Completed       bool
	WantedMore      bool
	FeltEasy        bool
	EmotionalMarker string
}

// PhaseConfig carries the detector thresholds. The exact values are tuning
// knobs, not invariants; defaults keep retreat more sensitive than advance so
// a noisy single day cannot flip a habit back and forth between phases.
type PhaseConfig struct {
	WindowDays         int     // rolling window size in calendar days
	AdvanceRate        float64 // window completion rate required to advance
	MinAdvanceSignals  int     // consecutive positive check-ins required
	RetreatMarkerCount int     // negative emotional markers that force retreat
	MaxMissedDays      int     // missed days in window tolerated before retreat
}

func DefaultPhaseConfig() PhaseConfig {
	return PhaseConfig{
		WindowDays:         7,
		AdvanceRate:        0.85,
		MinAdvanceSignals:  3,
		RetreatMarkerCount: 2,
		MaxMissedDays:      3,
	}
}

type PhaseEvaluation struct {
	Recommendation Recommendation `json:"recommendation"`
	CompletionRate float64        `json:"completion_rate"`
	PositiveRun    int            `json:"positive_run"`
	NegativeCount  int            `json:"negative_count"`
	MissedDays     int            `json:"missed_days"`
}

// EvaluatePhase inspects the signals inside the rolling window ending at
// today. Retreat is checked first and triggers on fewer observations than
// advance; that asymmetry is the hysteresis protecting against burnout.
// startedAt bounds the window for young habits: days before the habit
// existed are not counted as missed. A window with no observations at all
// holds, because both retreat triggers need evidence, not absence of data.
func EvaluatePhase(signals []CheckinSignal, startedAt, today time.Time, cfg PhaseConfig) PhaseEvaluation {
	if cfg.WindowDays <= 0 {
		cfg = DefaultPhaseConfig()
	}
	windowStart := DayOf(today).AddDate(0, 0, -(cfg.WindowDays - 1))

	observableDays := cfg.WindowDays
	if !startedAt.IsZero() {
		age := int(DayOf(today).Sub(DayOf(startedAt)).Hours()/24) + 1
		if age < 1 {
			age = 1
		}
		if age < observableDays {
			observableDays = age
		}
	}

	completedDays := make(map[time.Time]bool)
	negatives := 0
	inWindow := make([]CheckinSignal, 0, len(signals))
	for _, s := range signals {
		if s.Day.IsZero() {
			continue
		}
		day := DayOf(s.Day)
		if day.Before(windowStart) || day.After(DayOf(today)) {
			continue
		}
		inWindow = append(inWindow, s)
		if s.Completed {
			completedDays[day] = true
		}
		if NegativeMarker(s.EmotionalMarker) {
			negatives++
		}
	}

	completionRate := float64(len(completedDays)) / float64(observableDays)
	if completionRate > 1 {
		completionRate = 1
	}
	missed := observableDays - len(completedDays)
	if missed < 0 {
		missed = 0
	}

	// Most recent first for the trailing positive run.
	sortSignalsDesc(inWindow)
	positiveRun := 0
	for _, s := range inWindow {
		if !s.Completed || !(s.WantedMore || s.FeltEasy) {
			break
		}
		positiveRun++
	}
	positiveTotal := 0
	completedTotal := 0
	for _, s := range inWindow {
		if !s.Completed {
			continue
		}
		completedTotal++
		if s.WantedMore || s.FeltEasy {
			positiveTotal++
		}
	}

	eval := PhaseEvaluation{
		Recommendation: RecommendHold,
		CompletionRate: completionRate,
		PositiveRun:    positiveRun,
		NegativeCount:  negatives,
		MissedDays:     missed,
	}

	switch {
	case len(inWindow) == 0:
		// Nothing observed; no basis to move in either direction.
	case negatives >= cfg.RetreatMarkerCount || missed > cfg.MaxMissedDays:
		eval.Recommendation = RecommendRetreat
	case positiveRun >= cfg.MinAdvanceSignals &&
		completedTotal > 0 && positiveTotal*2 > completedTotal &&
		completionRate >= cfg.AdvanceRate:
		eval.Recommendation = RecommendAdvance
	}
	return eval
}

// ApplyRecommendation moves a phase index by at most one step, clamped to
// [1, phaseCount]. Returns the new phase and whether it changed.
func ApplyRecommendation(current, phaseCount int, rec Recommendation) (int, bool) {
	if phaseCount < 1 {
		phaseCount = 1
	}
	next := current
	switch rec {
	case RecommendAdvance:
		next = current + 1
	case RecommendRetreat:
		next = current - 1
	}
	if next < 1 {
		next = 1
	}
	if next > phaseCount {
		next = phaseCount
	}
	return next, next != current
}

func sortSignalsDesc(signals []CheckinSignal) {
	sort.Slice(signals, func(i, j int) bool { return signals[i].Day.After(signals[j].Day) })
}

// NegativeMarker reports whether an emotional marker counts as a retreat
// signal.
func NegativeMarker(marker string) bool {
	switch marker {
	case "frustration", "avoidance", "pain":
		return true
	default:
		return false
	}
}
