package scoring

import "fmt"

type ChipKind string

const (
	ChipGrace     ChipKind = "grace_streak"
	ChipMomentum  ChipKind = "momentum"
	ChipMonth     ChipKind = "month_progress"
	ChipIntensity ChipKind = "intensity"
)

type Chip struct {
	Kind ChipKind `json:"kind"`
	Text string   `json:"text"`
}

type Display struct {
	PrimaryBadge  string `json:"primary_badge"`
	BadgeSource   string `json:"badge_source,omitempty"`
	Chips         []Chip `json:"chips"`
	Encouragement string `json:"encouragement"`
}

var comebackMessages = [...]string{
	"Welcome back! Picking it up again is what matters 💪",
	"You came back, and that is the streak that counts 🔄",
	"Missed days don't define you. Today does ✨",
	"Back at it! Consistency is built on comebacks 🌅",
}

// rule is one step of a priority cascade: the first rule whose when matches
// supplies the text.
type rule struct {
	name string
	when func(m AggregateMetrics) bool
	text func(m AggregateMetrics) string
}

func firstMatch(rules []rule, m AggregateMetrics) (name, text string) {
	for _, r := range rules {
		if r.when(m) {
			return r.name, r.text(m)
		}
	}
	return "", ""
}

func (e *Engine) badgeRules() []rule {
	return []rule{
		{
			name: "comeback",
			when: func(m AggregateMetrics) bool { return m.Recovery.IsComeback },
			text: func(m AggregateMetrics) string { return m.Recovery.Label },
		},
		{
			name: "grace_streak",
			when: func(m AggregateMetrics) bool {
				return m.GraceStreak.WindowSize > 0 && reachesThreshold(m.GraceStreak.Percentage, e.cfg.Threshold)
			},
			text: func(m AggregateMetrics) string { return m.GraceStreak.Label },
		},
		{
			name: "momentum_up",
			when: func(m AggregateMetrics) bool { return m.Momentum.Trend == TrendUp },
			text: func(m AggregateMetrics) string { return fmt.Sprintf("📈 Momentum +%d", m.Momentum.Delta) },
		},
	}
}

func (e *Engine) encouragementRules() []rule {
	return []rule{
		{
			name: "comeback",
			when: func(m AggregateMetrics) bool { return m.Recovery.IsComeback },
			text: func(AggregateMetrics) string {
				return comebackMessages[e.rand.Intn(len(comebackMessages))]
			},
		},
		{
			name: "perfect_window",
			when: func(m AggregateMetrics) bool { return m.GraceStreak.WindowSize > 0 && m.GraceStreak.Percentage >= 100 },
			text: func(m AggregateMetrics) string {
				return fmt.Sprintf("Perfect %d days. You're unstoppable! 🔥", m.GraceStreak.WindowSize)
			},
		},
		{
			name: "grace_streak",
			when: func(m AggregateMetrics) bool {
				return m.GraceStreak.WindowSize > 0 && reachesThreshold(m.GraceStreak.Percentage, e.cfg.Threshold)
			},
			text: func(AggregateMetrics) string {
				return "You're in a grace streak. A missed day doesn't break you ✨"
			},
		},
		{
			name: "rising_momentum",
			when: func(m AggregateMetrics) bool {
				return m.Momentum.Trend == TrendUp && m.Momentum.Delta > risingMomentumDelta
			},
			text: func(AggregateMetrics) string { return "Your momentum is climbing fast! 📈" },
		},
		{
			name: "on_pace",
			when: func(m AggregateMetrics) bool {
				mp := m.MonthProgress
				return mp.CompletedThisMonth > 0 && mp.CompletedThisMonth >= mp.OnPaceTarget
			},
			text: func(m AggregateMetrics) string {
				return fmt.Sprintf("On pace for %d days this month 🎯", m.MonthProgress.Target)
			},
		},
		{
			name: "building_phase",
			when: func(m AggregateMetrics) bool { return m.Momentum.Score < buildingPhaseCeiling },
			text: func(AggregateMetrics) string { return "Every check-in counts. This is your building phase 🌱" },
		},
		{
			name: "fallback",
			when: func(AggregateMetrics) bool { return true },
			text: func(m AggregateMetrics) string {
				return fmt.Sprintf("Momentum at %d%%. Keep showing up 💪", m.Momentum.Score)
			},
		},
	}
}

func chipsFor(m AggregateMetrics) []Chip {
	chips := make([]Chip, 0, 4)
	if m.GraceStreak.WindowSize > 0 && m.GraceStreak.Percentage >= keepPushingFloor {
		chips = append(chips, Chip{
			Kind: ChipGrace,
			Text: fmt.Sprintf("✨ %d/%d days", m.GraceStreak.CompletedCount, m.GraceStreak.WindowSize),
		})
	}
	chips = append(chips, Chip{Kind: ChipMomentum, Text: momentumChip(m.Momentum)})
	if m.MonthProgress.CompletedThisMonth > 0 {
		chips = append(chips, Chip{
			Kind: ChipMonth,
			Text: fmt.Sprintf("📅 %d/%d this month", m.MonthProgress.CompletedThisMonth, m.MonthProgress.Target),
		})
	}
	if m.Intensity == IntensityHigh {
		chips = append(chips, Chip{Kind: ChipIntensity, Text: "Intensity: High"})
	}
	return chips
}

func momentumChip(mr MomentumResult) string {
	switch mr.Trend {
	case TrendUp:
		return fmt.Sprintf("📈 Momentum %d", mr.Score)
	case TrendDown:
		return fmt.Sprintf("📉 Momentum %d", mr.Score)
	default:
		return fmt.Sprintf("➡️ Momentum %d", mr.Score)
	}
}

// Format renders aggregate metrics for the presentation layer. The only
// non-deterministic output is the comeback encouragement, drawn from the
// engine's RandSource.
func (e *Engine) Format(m AggregateMetrics) Display {
	source, badge := firstMatch(e.badgeRules(), m)
	_, encouragement := firstMatch(e.encouragementRules(), m)
	return Display{
		PrimaryBadge:  badge,
		BadgeSource:   source,
		Chips:         chipsFor(m),
		Encouragement: encouragement,
	}
}

// Score is Aggregate followed by Format.
func (e *Engine) Score(in AggregateInput) (AggregateMetrics, Display) {
	m := e.Aggregate(in)
	return m, e.Format(m)
}
