package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unity-app/unity-engine/internal/core/scoring"
)

func day(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func TestBuildDaySeries(t *testing.T) {
	start := day(2024, 1, 10, 0, 0)
	end := day(2024, 1, 14, 0, 0)

	t.Run("Marks completed calendar days and ignores time of day", func(t *testing.T) {
		dates := []time.Time{
			day(2024, 1, 12, 23, 59),
			day(2024, 1, 10, 9, 0),
			day(2024, 1, 10, 18, 0),
			day(2024, 1, 20, 8, 0),
			day(2024, 1, 1, 8, 0),
		}

		series := scoring.BuildDaySeries(dates, start, end)

		assert.Equal(t, []bool{true, false, true, false, false}, series.Days())
		assert.Equal(t, start, series.Start())
		assert.Equal(t, end, series.End())
		assert.Equal(t, 2, series.Completed())
	})

	t.Run("Inverted span returns empty series", func(t *testing.T) {
		series := scoring.BuildDaySeries([]time.Time{start}, end, start)
		assert.Equal(t, 0, series.Len())
		assert.True(t, series.End().IsZero())
	})

	t.Run("Empty dates yields all-missed series", func(t *testing.T) {
		series := scoring.BuildDaySeries(nil, start, end)
		assert.Equal(t, 5, series.Len())
		assert.Equal(t, 0, series.Completed())
	})

	t.Run("Zero dates are skipped", func(t *testing.T) {
		series := scoring.BuildDaySeries([]time.Time{{}}, start, end)
		assert.Equal(t, 0, series.Completed())
	})

	t.Run("Zero end defaults to today", func(t *testing.T) {
		today := time.Now()
		series := scoring.BuildDaySeries([]time.Time{today}, today.AddDate(0, 0, -2), time.Time{})
		require.Equal(t, 3, series.Len())
		assert.True(t, series.At(2))
	})

	t.Run("Days are compared in the start date's location", func(t *testing.T) {
		rome := time.FixedZone("UTC+2", 2*60*60)
		localStart := time.Date(2024, 1, 10, 0, 0, 0, 0, rome)
		localEnd := time.Date(2024, 1, 12, 0, 0, 0, 0, rome)

		series := scoring.BuildDaySeries([]time.Time{day(2024, 1, 10, 23, 30)}, localStart, localEnd)

		assert.Equal(t, []bool{false, true, false}, series.Days())
	})

	t.Run("Series is immutable through its accessors", func(t *testing.T) {
		series := scoring.NewDaySeries(start, true, false)
		days := series.Days()
		days[1] = true

		assert.False(t, series.At(1))
		assert.False(t, series.At(99), "Out of range reads are misses")
	})
}

func TestLongestRun(t *testing.T) {
	series := scoring.NewDaySeries(time.Now(), true, true, false, true, true, true, false, true)
	assert.Equal(t, 3, scoring.LongestRun(series))
	assert.Equal(t, 0, scoring.LongestRun(scoring.NewDaySeries(time.Now())))
}
