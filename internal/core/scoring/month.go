package scoring

import (
	"math"
	"time"
)

type MonthProgressResult struct {
	CompletedThisMonth int `json:"completed_this_month"`
	Target             int `json:"target"`
	OnPaceTarget       int `json:"on_pace_target"`
	Percentage         int `json:"percentage"`
}

// CalculateMonthProgress counts distinct calendar days of today's month, up
// to and including today, with at least one completion. Days are compared in
// today's location. OnPaceTarget is the share of target expected after the
// days elapsed so far.
func CalculateMonthProgress(dates []time.Time, target int, today time.Time) MonthProgressResult {
	if target <= 0 {
		target = DefaultMonthlyTarget
	}
	if today.IsZero() {
		today = time.Now()
	}

	loc := today.Location()
	year, month, dayOfMonth := today.Date()

	seen := make(map[int]bool)
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		y, m, day := d.In(loc).Date()
		if y == year && m == month && day <= dayOfMonth {
			seen[day] = true
		}
	}

	completed := len(seen)
	return MonthProgressResult{
		CompletedThisMonth: completed,
		Target:             target,
		OnPaceTarget:       onPace(target, dayOfMonth, daysIn(year, month, loc)),
		Percentage:         min(100, percentOf(completed, target)),
	}
}

func onPace(target, elapsed, daysInMonth int) int {
	if daysInMonth <= 0 {
		return target
	}
	return int(math.Round(float64(target) * float64(elapsed) / float64(daysInMonth)))
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
