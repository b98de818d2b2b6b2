package engine

import (
	"sort"
	"time"
)

// DayCompletion is one check-in projected to the fields streak math needs.
type DayCompletion struct {
	Day       time.Time
	Completed bool
}

type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// DayOf strips time-of-day, collapsing an event timestamp to its calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeStreaks walks the completion history against an injected "today".
// The current streak counts consecutive completed days ending at today, or at
// yesterday when today's check-in has not happened yet. A day with a
// completed=false event breaks the streak exactly like a missing day.
// Longest scans the whole history independent of today.
func ComputeStreaks(events []DayCompletion, today time.Time) StreakResult {
	done := make(map[time.Time]bool, len(events))
	for _, ev := range events {
		if ev.Day.IsZero() {
			// Malformed row, skip rather than abort the calculation.
			continue
		}
		if ev.Completed {
			done[DayOf(ev.Day)] = true
		}
	}
	if len(done) == 0 {
		return StreakResult{}
	}

	day := DayOf(today)
	if !done[day] {
		// Grace for a pending same-day check-in.
		day = day.AddDate(0, 0, -1)
	}
	current := 0
	for done[day] {
		current++
		day = day.AddDate(0, 0, -1)
	}

	days := make([]time.Time, 0, len(done))
	for d := range done {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest := 0
	run := 0
	var prev time.Time
	for i, d := range days {
		if i > 0 && d.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	if current > longest {
		longest = current
	}
	return StreakResult{Current: current, Longest: longest}
}
