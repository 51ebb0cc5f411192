package scoring

import "math"

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type MomentumResult struct {
	Score int   `json:"score"`
	Trend Trend `json:"trend"`
	Delta int   `json:"delta"`
}

// CalculateMomentum compares an exponentially weighted score of the last
// lookback days against the plain completion rate of the lookback days
// before them.
//
// Iterating from the most recent day backward, each day weighs 0.85 times
// the day after it, so today counts most. When there is no older window the
// score is compared with itself and the trend is stable.
func CalculateMomentum(series DaySeries, lookback int) MomentumResult {
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	n := series.Len()
	recentFrom := max(0, n-lookback)
	olderFrom := max(0, recentFrom-lookback)

	recent := series.days[recentFrom:]
	older := series.days[olderFrom:recentFrom]

	score := weightedScore(recent)
	oldScore := score
	if len(older) > 0 {
		oldScore = percentOf(countTrue(older), len(older))
	}

	delta := score - oldScore
	return MomentumResult{
		Score: score,
		Trend: trendOf(delta),
		Delta: delta,
	}
}

func weightedScore(recent []bool) int {
	if len(recent) == 0 {
		return 0
	}
	weight, sum, total := 1.0, 0.0, 0.0
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i] {
			sum += weight
		}
		total += weight
		weight *= momentumDecay
	}
	return int(math.Round(100 * sum / total))
}

func trendOf(delta int) Trend {
	switch {
	case delta > trendBand:
		return TrendUp
	case delta < -trendBand:
		return TrendDown
	default:
		return TrendStable
	}
}
