package scoring

import (
	"math/rand"
	"time"
)

// RandSource picks an index in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

type Clock func() time.Time

// sharedRand uses the package-level math/rand source, which is safe for
// concurrent use unlike a *rand.Rand.
type sharedRand struct{}

func (sharedRand) Intn(n int) int { return rand.Intn(n) }

// Engine composes the calculators with one ScoringConfig. It holds no
// mutable state and may be shared between goroutines as long as the
// injected RandSource is itself safe for concurrent use.
type Engine struct {
	cfg  ScoringConfig
	now  Clock
	rand RandSource
	loc  *time.Location
}

type Option func(*Engine)

func WithConfig(cfg ScoringConfig) Option {
	return func(e *Engine) { e.cfg = cfg.Normalize() }
}

func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.now = c
		}
	}
}

func WithRand(r RandSource) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// WithLocation sets the time zone whose calendar days the engine scores.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cfg:  DefaultConfig(),
		now:  time.Now,
		rand: sharedRand{},
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() ScoringConfig { return e.cfg }

func (e *Engine) Location() *time.Location { return e.loc }

// Today returns the current time in the engine's location.
func (e *Engine) Today() time.Time { return e.now().In(e.loc) }

type AggregateInput struct {
	CompletionDates []time.Time
	// StartDate opens the series. Zero means SpanDays before today.
	StartDate time.Time
	Intensity Intensity
	// FlexUsed is the number of flex days already spent, tracked by the caller.
	FlexUsed int
}

// AggregateMetrics carries every sub-result; none is ever left unset.
type AggregateMetrics struct {
	SeriesStart   time.Time           `json:"series_start"`
	SeriesDays    int                 `json:"series_days"`
	LongestRun    int                 `json:"longest_run"`
	GraceStreak   GraceStreakResult   `json:"grace_streak"`
	Recovery      RecoveryResult      `json:"recovery"`
	Momentum      MomentumResult      `json:"momentum"`
	MonthProgress MonthProgressResult `json:"month_progress"`
	FlexDays      FlexDaysResult      `json:"flex_days"`
	Intensity     Intensity           `json:"intensity,omitempty"`
}

// Series builds the day series ending today. A zero start opens it
// SpanDays before today.
func (e *Engine) Series(dates []time.Time, start time.Time) DaySeries {
	return e.seriesUntil(dates, start, e.Today())
}

func (e *Engine) seriesUntil(dates []time.Time, start, today time.Time) DaySeries {
	if start.IsZero() {
		start = today.AddDate(0, 0, -(e.cfg.SpanDays - 1))
	}
	return BuildDaySeries(dates, start.In(e.loc), today)
}

func (e *Engine) Aggregate(in AggregateInput) AggregateMetrics {
	today := e.Today()
	series := e.seriesUntil(in.CompletionDates, in.StartDate, today)
	return AggregateMetrics{
		SeriesStart:   series.Start(),
		SeriesDays:    series.Len(),
		LongestRun:    LongestRun(series),
		GraceStreak:   CalculateGraceStreak(series, e.cfg.Window, e.cfg.Threshold),
		Recovery:      CalculateRecovery(series),
		Momentum:      CalculateMomentum(series, e.cfg.Lookback),
		MonthProgress: CalculateMonthProgress(in.CompletionDates, e.cfg.MonthlyTarget, today),
		FlexDays:      calculateFlexDays(series, e.cfg.FlexMilestone, in.FlexUsed),
		Intensity:     in.Intensity,
	}
}

// FlexDays applies the configured milestone to a prebuilt series.
func (e *Engine) FlexDays(series DaySeries, used int) FlexDaysResult {
	return calculateFlexDays(series, e.cfg.FlexMilestone, used)
}
