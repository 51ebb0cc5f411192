package scoring

const (
	DefaultWindow        = 14
	DefaultThreshold     = 0.85
	DefaultLookback      = 7
	DefaultMonthlyTarget = 20
	DefaultFlexMilestone = 10
	DefaultSpanDays      = 30
)

const (
	momentumDecay        = 0.85
	trendBand            = 5
	keepPushingFloor     = 70
	risingMomentumDelta  = 10
	buildingPhaseCeiling = 50
)

// ScoringConfig groups every tunable of the engine so a scoring run is fully
// described by its inputs. Zero or out-of-range fields are replaced by the
// documented defaults in Normalize.
type ScoringConfig struct {
	// Window is the trailing number of days evaluated by the grace streak.
	Window int `json:"window" yaml:"window"`
	// Threshold is the completion ratio (0,1] that makes a window a grace streak.
	Threshold float64 `json:"threshold" yaml:"threshold"`
	// Lookback is the size of the recent and older momentum windows.
	Lookback int `json:"lookback" yaml:"lookback"`
	// MonthlyTarget is the number of completed days expected per calendar month.
	MonthlyTarget int `json:"monthly_target" yaml:"monthly_target"`
	// FlexMilestone is the consecutive-day run length that earns one flex day.
	FlexMilestone int `json:"flex_milestone" yaml:"flex_milestone"`
	// SpanDays is the series length used when the caller gives no start date.
	SpanDays int `json:"span_days" yaml:"span_days"`
}

func DefaultConfig() ScoringConfig {
	return ScoringConfig{
		Window:        DefaultWindow,
		Threshold:     DefaultThreshold,
		Lookback:      DefaultLookback,
		MonthlyTarget: DefaultMonthlyTarget,
		FlexMilestone: DefaultFlexMilestone,
		SpanDays:      DefaultSpanDays,
	}
}

func (c ScoringConfig) Normalize() ScoringConfig {
	d := DefaultConfig()
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = d.Threshold
	}
	if c.Lookback <= 0 {
		c.Lookback = d.Lookback
	}
	if c.MonthlyTarget <= 0 {
		c.MonthlyTarget = d.MonthlyTarget
	}
	if c.FlexMilestone <= 0 {
		c.FlexMilestone = d.FlexMilestone
	}
	if c.SpanDays <= 0 {
		c.SpanDays = d.SpanDays
	}
	return c
}
