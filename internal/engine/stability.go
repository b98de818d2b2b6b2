package engine

import "math"

// StabilityInput carries the aggregates the assessor scores. CompletionRate
// and PositiveEmotionRate are over the trailing 14-day window.
type StabilityInput struct {
	CompletionRate        float64
	ConsecutiveDays       int
	AvgDifficulty         float64
	PositiveEmotionRate   float64
	TotalDaysSinceCreated int
}

type StabilityFactors struct {
	Consistency float64 `json:"consistency"`
	Streak      float64 `json:"streak"`
	Difficulty  float64 `json:"difficulty"`
	Emotion     float64 `json:"emotion"`
}

type StabilityResult struct {
	Score                 float64          `json:"score"`
	ReadyForProliferation bool             `json:"ready_for_proliferation"`
	Factors               StabilityFactors `json:"factors"`
}

// Proliferation gate. All four must hold at once so a high composite score
// built on one strong factor cannot trigger expansion prompts on its own.
const (
	proliferationMinRate       = 0.8
	proliferationMinStreak     = 7
	proliferationMaxDifficulty = 3.0
	proliferationMinTotalDays  = 14
)

// AssessStability folds recent completion rate, streak, perceived difficulty
// and emotional signal into a 0-100 score.
func AssessStability(in StabilityInput) StabilityResult {
	rate := clamp01(in.CompletionRate)
	streakRatio := math.Min(float64(in.ConsecutiveDays)/14.0, 1.0)
	emotion := clamp01(in.PositiveEmotionRate)

	factors := StabilityFactors{
		Consistency: rate * 100,
		Streak:      streakRatio * 100,
		Difficulty:  difficultyScore(in.AvgDifficulty),
		Emotion:     emotion * 100,
	}
	score := 0.4*factors.Consistency + 0.25*factors.Streak + 0.2*factors.Difficulty + 0.15*factors.Emotion

	ready := rate >= proliferationMinRate &&
		in.ConsecutiveDays >= proliferationMinStreak &&
		in.AvgDifficulty <= proliferationMaxDifficulty &&
		in.TotalDaysSinceCreated >= proliferationMinTotalDays

	return StabilityResult{
		Score:                 math.Round(score*100) / 100,
		ReadyForProliferation: ready,
		Factors:               factors,
	}
}

func difficultyScore(avg float64) float64 {
	switch {
	case avg <= 2:
		return 100
	case avg <= 3:
		return 80
	case avg <= 4:
		return 50
	default:
		return 20
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
