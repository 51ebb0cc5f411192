package scoring

type FlexDaysResult struct {
	Available int `json:"available"`
	Earned    int `json:"earned"`
	Used      int `json:"used"`
}

// CalculateFlexDays credits one flex day per DefaultFlexMilestone consecutive
// completed days, scanning the whole series. Use is tracked elsewhere.
func CalculateFlexDays(series DaySeries) FlexDaysResult {
	return calculateFlexDays(series, DefaultFlexMilestone, 0)
}

func calculateFlexDays(series DaySeries, milestone, used int) FlexDaysResult {
	if milestone <= 0 {
		milestone = DefaultFlexMilestone
	}
	used = max(0, used)

	earned, run := 0, 0
	for _, d := range series.days {
		if !d {
			run = 0
			continue
		}
		run++
		if run%milestone == 0 {
			earned++
		}
	}

	return FlexDaysResult{
		Available: max(0, earned-used),
		Earned:    earned,
		Used:      used,
	}
}
