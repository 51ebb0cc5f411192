package scoring

import "strings"

type Intensity string

const (
	IntensityNone   Intensity = ""
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

const (
	highIntensityMinutes   = 60
	mediumIntensityMinutes = 25
)

// IntensityFor tags a goal from its planned duration and declared
// difficulty. The tag never depends on completion history.
func IntensityFor(durationMinutes int, difficulty string) Intensity {
	switch d := strings.ToLower(strings.TrimSpace(difficulty)); {
	case d == "hard" || durationMinutes >= highIntensityMinutes:
		return IntensityHigh
	case d == "medium" || durationMinutes >= mediumIntensityMinutes:
		return IntensityMedium
	case d == "" && durationMinutes <= 0:
		return IntensityNone
	default:
		return IntensityLow
	}
}

func ParseIntensity(s string) Intensity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return IntensityLow
	case "medium":
		return IntensityMedium
	case "high":
		return IntensityHigh
	default:
		return IntensityNone
	}
}
