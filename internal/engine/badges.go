package engine

import "fmt"

// ConditionKind is the closed set of unlock condition shapes. The evaluator
// is a total function over these kinds; anything else fails catalog
// validation at startup instead of surfacing at evaluation time.
type ConditionKind string

const (
	ConditionFirstHabit        ConditionKind = "first_habit"
	ConditionFirstCheckin      ConditionKind = "first_checkin"
	ConditionStreak            ConditionKind = "streak"
	ConditionTotalCheckins     ConditionKind = "total_checkins"
	ConditionTotalCelebrations ConditionKind = "total_celebrations"
	ConditionHabitCount        ConditionKind = "habit_count"
	ConditionPerfectDays       ConditionKind = "perfect_days"
	ConditionPhaseReached      ConditionKind = "phase_reached"
)

type UnlockCondition struct {
	Kind      ConditionKind `json:"kind"`
	Threshold int           `json:"threshold,omitempty"`
}

type Badge struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Rarity      string          `json:"rarity"`
	Category    string          `json:"category"`
	Condition   UnlockCondition `json:"condition"`
}

// UserAggregates is the read-side snapshot badge conditions are evaluated
// against.
type UserAggregates struct {
	HabitCount        int
	TotalCompletions  int
	TotalCelebrations int
	MaxCurrentStreak  int
	PerfectDays       int
	MaxPhase          int
}

// Catalog is the fixed badge set. Codes never change once shipped; unlock
// rows reference them by code.
func Catalog() []Badge {
	return []Badge{
		{Code: "first_habit", Name: "First Step", Description: "Created your first habit", Rarity: "common", Category: "starter", Condition: UnlockCondition{Kind: ConditionFirstHabit}},
		{Code: "first_checkin", Name: "Day One", Description: "Logged your first check-in", Rarity: "common", Category: "starter", Condition: UnlockCondition{Kind: ConditionFirstCheckin}},
		{Code: "streak_7", Name: "One Week Strong", Description: "Kept a habit going 7 days in a row", Rarity: "common", Category: "streak", Condition: UnlockCondition{Kind: ConditionStreak, Threshold: 7}},
		{Code: "streak_21", Name: "Three Week Groove", Description: "21 consecutive days on one habit", Rarity: "rare", Category: "streak", Condition: UnlockCondition{Kind: ConditionStreak, Threshold: 21}},
		{Code: "streak_66", Name: "Second Nature", Description: "66 consecutive days, the habit is yours", Rarity: "epic", Category: "streak", Condition: UnlockCondition{Kind: ConditionStreak, Threshold: 66}},
		{Code: "streak_100", Name: "Centurion", Description: "100 consecutive days on one habit", Rarity: "legendary", Category: "streak", Condition: UnlockCondition{Kind: ConditionStreak, Threshold: 100}},
		{Code: "checkins_50", Name: "Fifty In", Description: "50 completed check-ins overall", Rarity: "common", Category: "volume", Condition: UnlockCondition{Kind: ConditionTotalCheckins, Threshold: 50}},
		{Code: "checkins_250", Name: "Compounding", Description: "250 completed check-ins overall", Rarity: "rare", Category: "volume", Condition: UnlockCondition{Kind: ConditionTotalCheckins, Threshold: 250}},
		{Code: "celebrations_10", Name: "Party of Ten", Description: "10 celebrations logged", Rarity: "common", Category: "celebration", Condition: UnlockCondition{Kind: ConditionTotalCelebrations, Threshold: 10}},
		{Code: "celebrations_50", Name: "Confetti Storm", Description: "50 celebrations logged", Rarity: "rare", Category: "celebration", Condition: UnlockCondition{Kind: ConditionTotalCelebrations, Threshold: 50}},
		{Code: "habits_3", Name: "Juggler", Description: "Three habits tracked at once", Rarity: "common", Category: "growth", Condition: UnlockCondition{Kind: ConditionHabitCount, Threshold: 3}},
		{Code: "habits_5", Name: "Gardener", Description: "Five habits tracked at once", Rarity: "rare", Category: "growth", Condition: UnlockCondition{Kind: ConditionHabitCount, Threshold: 5}},
		{Code: "perfect_days_10", Name: "Clean Sweep", Description: "10 days with every active habit completed", Rarity: "epic", Category: "volume", Condition: UnlockCondition{Kind: ConditionPerfectDays, Threshold: 10}},
		{Code: "phase_3", Name: "Climber", Description: "Reached phase 3 on a habit", Rarity: "rare", Category: "growth", Condition: UnlockCondition{Kind: ConditionPhaseReached, Threshold: 3}},
		{Code: "phase_5", Name: "Summit", Description: "Reached phase 5 on a habit", Rarity: "epic", Category: "growth", Condition: UnlockCondition{Kind: ConditionPhaseReached, Threshold: 5}},
	}
}

// ValidateCatalog runs at startup; a bad catalog is a programming error we
// want to fail on before serving traffic.
func ValidateCatalog(badges []Badge) error {
	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if b.Code == "" {
			return fmt.Errorf("badge with empty code")
		}
		if seen[b.Code] {
			return fmt.Errorf("duplicate badge code %q", b.Code)
		}
		seen[b.Code] = true
		switch b.Condition.Kind {
		case ConditionFirstHabit, ConditionFirstCheckin:
			// thresholdless
		case ConditionStreak, ConditionTotalCheckins, ConditionTotalCelebrations,
			ConditionHabitCount, ConditionPerfectDays, ConditionPhaseReached:
			if b.Condition.Threshold <= 0 {
				return fmt.Errorf("badge %q: condition %q requires a positive threshold", b.Code, b.Condition.Kind)
			}
		default:
			return fmt.Errorf("badge %q: unknown condition kind %q", b.Code, b.Condition.Kind)
		}
	}
	return nil
}

// ConditionMet evaluates one condition against the aggregate snapshot.
func ConditionMet(cond UnlockCondition, agg UserAggregates) bool {
	switch cond.Kind {
	case ConditionFirstHabit:
		return agg.HabitCount >= 1
	case ConditionFirstCheckin:
		return agg.TotalCompletions >= 1
	case ConditionStreak:
		return agg.MaxCurrentStreak >= cond.Threshold
	case ConditionTotalCheckins:
		return agg.TotalCompletions >= cond.Threshold
	case ConditionTotalCelebrations:
		return agg.TotalCelebrations >= cond.Threshold
	case ConditionHabitCount:
		return agg.HabitCount >= cond.Threshold
	case ConditionPerfectDays:
		return agg.PerfectDays >= cond.Threshold
	case ConditionPhaseReached:
		return agg.MaxPhase >= cond.Threshold
	default:
		return false
	}
}

// MilestoneThresholds maps milestone type to the streak day count that earns
// it, in ascending order.
type MilestoneThreshold struct {
	Type string
	Days int
}

func MilestoneThresholds() []MilestoneThreshold {
	return []MilestoneThreshold{
		{Type: "day_7", Days: 7},
		{Type: "day_21", Days: 21},
		{Type: "day_66", Days: 66},
		{Type: "day_100", Days: 100},
	}
}
