package engine

import "testing"

func TestCatalogValidates(t *testing.T) {
	if err := ValidateCatalog(Catalog()); err != nil {
		t.Fatalf("shipped catalog is invalid: %v", err)
	}
}

func TestValidateCatalogRejections(t *testing.T) {
	cases := []struct {
		name   string
		badges []Badge
	}{
		{
			name:   "empty_code",
			badges: []Badge{{Condition: UnlockCondition{Kind: ConditionFirstHabit}}},
		},
		{
			name: "duplicate_code",
			badges: []Badge{
				{Code: "x", Condition: UnlockCondition{Kind: ConditionFirstHabit}},
				{Code: "x", Condition: UnlockCondition{Kind: ConditionFirstCheckin}},
			},
		},
		{
			name:   "unknown_kind",
			badges: []Badge{{Code: "x", Condition: UnlockCondition{Kind: "lunar_phase"}}},
		},
		{
			name:   "missing_threshold",
			badges: []Badge{{Code: "x", Condition: UnlockCondition{Kind: ConditionStreak}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateCatalog(tc.badges); err == nil {
				t.Fatalf("ValidateCatalog accepted %+v", tc.badges)
			}
		})
	}
}

func TestConditionMet(t *testing.T) {
	agg := UserAggregates{
		HabitCount:        2,
		TotalCompletions:  55,
		TotalCelebrations: 9,
		MaxCurrentStreak:  21,
		PerfectDays:       4,
		MaxPhase:          3,
	}

	cases := []struct {
		name string
		cond UnlockCondition
		want bool
	}{
		{name: "first_habit", cond: UnlockCondition{Kind: ConditionFirstHabit}, want: true},
		{name: "first_checkin", cond: UnlockCondition{Kind: ConditionFirstCheckin}, want: true},
		{name: "streak_met_exactly", cond: UnlockCondition{Kind: ConditionStreak, Threshold: 21}, want: true},
		{name: "streak_not_met", cond: UnlockCondition{Kind: ConditionStreak, Threshold: 66}, want: false},
		{name: "checkins_met", cond: UnlockCondition{Kind: ConditionTotalCheckins, Threshold: 50}, want: true},
		{name: "celebrations_short_by_one", cond: UnlockCondition{Kind: ConditionTotalCelebrations, Threshold: 10}, want: false},
		{name: "habit_count_not_met", cond: UnlockCondition{Kind: ConditionHabitCount, Threshold: 3}, want: false},
		{name: "perfect_days_not_met", cond: UnlockCondition{Kind: ConditionPerfectDays, Threshold: 10}, want: false},
		{name: "phase_reached", cond: UnlockCondition{Kind: ConditionPhaseReached, Threshold: 3}, want: true},
		{name: "unknown_kind_never_unlocks", cond: UnlockCondition{Kind: "???"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConditionMet(tc.cond, agg); got != tc.want {
				t.Fatalf("ConditionMet(%+v)=%v, want %v", tc.cond, got, tc.want)
			}
		})
	}
}

func TestMilestoneThresholdsAscending(t *testing.T) {
	ths := MilestoneThresholds()
	for i := 1; i < len(ths); i++ {
		if ths[i].Days <= ths[i-1].Days {
			t.Fatalf("thresholds not ascending: %+v", ths)
		}
	}
}
