package scoring

import (
	"time"
)

const dayKeyLayout = "2006-01-02"

// DaySeries is an ordered, gap-free sequence of calendar days, each marked
// completed or missed. It is immutable: accessors return copies.
type DaySeries struct {
	start time.Time
	days  []bool
}

// NewDaySeries builds a series starting on the calendar day of start.
func NewDaySeries(start time.Time, days ...bool) DaySeries {
	cp := make([]bool, len(days))
	copy(cp, days)
	return DaySeries{start: StartOfDay(start), days: cp}
}

func (s DaySeries) Len() int { return len(s.days) }

func (s DaySeries) Start() time.Time { return s.start }

// End returns the last calendar day of the series, or the zero time when empty.
func (s DaySeries) End() time.Time {
	if len(s.days) == 0 {
		return time.Time{}
	}
	return s.start.AddDate(0, 0, len(s.days)-1)
}

func (s DaySeries) At(i int) bool {
	if i < 0 || i >= len(s.days) {
		return false
	}
	return s.days[i]
}

func (s DaySeries) Days() []bool {
	cp := make([]bool, len(s.days))
	copy(cp, s.days)
	return cp
}

// Completed counts the completed days in the series.
func (s DaySeries) Completed() int {
	return countTrue(s.days)
}

// tail returns a view of the last n days. Callers must not write to it.
func (s DaySeries) tail(n int) []bool {
	if n >= len(s.days) {
		return s.days
	}
	if n <= 0 {
		return nil
	}
	return s.days[len(s.days)-n:]
}

// BuildDaySeries marks every calendar day in [start, end] as completed when
// at least one of dates falls on it. Days are compared in start's location.
// A zero end means "today". An inverted span yields an empty series.
func BuildDaySeries(dates []time.Time, start, end time.Time) DaySeries {
	loc := start.Location()
	if end.IsZero() {
		end = time.Now()
	}
	first := StartOfDay(start)
	last := StartOfDay(end.In(loc))
	if start.IsZero() || first.After(last) {
		return DaySeries{start: first}
	}

	done := make(map[string]bool, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		done[d.In(loc).Format(dayKeyLayout)] = true
	}

	var days []bool
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, done[day.Format(dayKeyLayout)])
	}

	return DaySeries{start: first, days: days}
}

// LongestRun returns the longest consecutive run of completed days.
func LongestRun(series DaySeries) int {
	longest, run := 0, 0
	for _, d := range series.days {
		if !d {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func countTrue(days []bool) int {
	n := 0
	for _, d := range days {
		if d {
			n++
		}
	}
	return n
}
