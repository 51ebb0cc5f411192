package scoring

import "fmt"

type RecoveryResult struct {
	ConsecutiveRun int    `json:"consecutive_run"`
	IsComeback     bool   `json:"is_comeback"`
	Label          string `json:"label,omitempty"`
}

// CalculateRecovery counts the completed run at the end of the series and
// reports a comeback when that run directly follows a missed day.
func CalculateRecovery(series DaySeries) RecoveryResult {
	n := series.Len()
	run := 0
	for i := n - 1; i >= 0 && series.days[i]; i-- {
		run++
	}

	prev := n - run - 1
	comeback := run > 0 && prev >= 0 && !series.days[prev]

	return RecoveryResult{
		ConsecutiveRun: run,
		IsComeback:     comeback,
		Label:          recoveryLabel(run, comeback),
	}
}

func recoveryLabel(run int, comeback bool) string {
	switch {
	case comeback && run == 1:
		return "🔄 Back on track!"
	case comeback:
		return fmt.Sprintf("🔄 %d-day comeback!", run)
	case run == 1:
		return "1 day strong"
	case run > 1:
		return fmt.Sprintf("%d days strong", run)
	default:
		return ""
	}
}
