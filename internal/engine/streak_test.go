package engine

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestComputeStreaks(t *testing.T) {
	cases := []struct {
		name        string
		events      []DayCompletion
		today       time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "no_events",
			events:      nil,
			today:       day(10),
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name: "seven_consecutive_ending_yesterday",
			events: []DayCompletion{
				{Day: day(0), Completed: true},
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: true},
				{Day: day(3), Completed: true},
				{Day: day(4), Completed: true},
				{Day: day(5), Completed: true},
				{Day: day(6), Completed: true},
			},
			today:       day(7),
			wantCurrent: 7,
			wantLongest: 7,
		},
		{
			name: "gap_resets_current",
			events: []DayCompletion{
				{Day: day(0), Completed: true},
				{Day: day(1), Completed: true},
				{Day: day(3), Completed: true},
			},
			today:       day(3),
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name: "completed_false_breaks_like_absence",
			events: []DayCompletion{
				{Day: day(0), Completed: true},
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: false},
				{Day: day(3), Completed: true},
			},
			today:       day(3),
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name: "today_checked_in_counts",
			events: []DayCompletion{
				{Day: day(4), Completed: true},
				{Day: day(5), Completed: true},
				{Day: day(6), Completed: true},
			},
			today:       day(6),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "stale_history_current_zero",
			events: []DayCompletion{
				{Day: day(0), Completed: true},
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: true},
			},
			today:       day(10),
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name: "longest_in_middle_of_history",
			events: []DayCompletion{
				{Day: day(0), Completed: true},
				{Day: day(1), Completed: true},
				{Day: day(2), Completed: true},
				{Day: day(3), Completed: true},
				{Day: day(5), Completed: true},
				{Day: day(6), Completed: true},
			},
			today:       day(6),
			wantCurrent: 2,
			wantLongest: 4,
		},
		{
			name: "timestamps_collapse_to_days",
			events: []DayCompletion{
				{Day: day(5).Add(9 * time.Hour), Completed: true},
				{Day: day(6).Add(22*time.Hour + 30*time.Minute), Completed: true},
			},
			today:       day(6).Add(5 * time.Hour),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "zero_day_rows_skipped",
			events: []DayCompletion{
				{Day: time.Time{}, Completed: true},
				{Day: day(6), Completed: true},
			},
			today:       day(6),
			wantCurrent: 1,
			wantLongest: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStreaks(tc.events, tc.today)
			if got.Current != tc.wantCurrent || got.Longest != tc.wantLongest {
				t.Fatalf("ComputeStreaks()=%+v, want current=%d longest=%d", got, tc.wantCurrent, tc.wantLongest)
			}
			if got.Current > got.Longest {
				t.Fatalf("current %d exceeds longest %d", got.Current, got.Longest)
			}
		})
	}
}

func TestComputeStreaksCurrentNeverExceedsLongest(t *testing.T) {
	// A rough sweep over generated histories with varying gaps.
	for gap := 0; gap < 5; gap++ {
		for length := 0; length < 20; length++ {
			var events []DayCompletion
			for i := 0; i < length; i++ {
				if gap > 0 && i%gap == 0 {
					continue
				}
				events = append(events, DayCompletion{Day: day(i), Completed: true})
			}
			got := ComputeStreaks(events, day(length))
			if got.Current > got.Longest {
				t.Fatalf("gap=%d length=%d: current %d > longest %d", gap, length, got.Current, got.Longest)
			}
		}
	}
}
