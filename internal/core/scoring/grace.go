package scoring

import (
	"fmt"
	"math"
)

type GraceStreakResult struct {
	CompletedCount int    `json:"completed_count"`
	WindowSize     int    `json:"window_size"`
	Percentage     int    `json:"percentage"`
	Label          string `json:"label"`
}

// CalculateGraceStreak scores the trailing window of the series. When the
// series is shorter than window, WindowSize is the actual slice length.
func CalculateGraceStreak(series DaySeries, window int, threshold float64) GraceStreakResult {
	if window <= 0 {
		return GraceStreakResult{}
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	slice := series.tail(window)
	size := len(slice)
	if size == 0 {
		return GraceStreakResult{}
	}

	done := countTrue(slice)
	pct := percentOf(done, size)

	return GraceStreakResult{
		CompletedCount: done,
		WindowSize:     size,
		Percentage:     pct,
		Label:          graceLabel(done, size, pct, threshold),
	}
}

func graceLabel(done, size, pct int, threshold float64) string {
	switch {
	case pct >= 100:
		return fmt.Sprintf("Perfect %d days! 🔥", size)
	case reachesThreshold(pct, threshold):
		return fmt.Sprintf("%d/%d Grace Streak ✨", done, size)
	case pct >= keepPushingFloor:
		return fmt.Sprintf("%d/%d days - Keep pushing!", done, size)
	default:
		return fmt.Sprintf("%d/%d days - Building momentum", done, size)
	}
}

// reachesThreshold compares against threshold*100 with a small tolerance so
// that 0.85 and 85 meet exactly.
func reachesThreshold(pct int, threshold float64) bool {
	return float64(pct) >= threshold*100-1e-9
}

func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
