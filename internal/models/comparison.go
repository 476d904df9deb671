package models

// SeverityBand buckets an average severity for display.
type SeverityBand string

const (
	BandNone     SeverityBand = "None"
	BandMild     SeverityBand = "Mild"
	BandModerate SeverityBand = "Moderate"
	BandSevere   SeverityBand = "Severe"
)

// BandForAverage maps an average severity on the 1-3 scale to a band.
func BandForAverage(avg float64) SeverityBand {
	switch {
	case avg < 1.0:
		return BandNone
	case avg < 1.5:
		return BandMild
	case avg < 2.5:
		return BandModerate
	default:
		return BandSevere
	}
}

// WeekState identifies which comparison narrative applies.
type WeekState string

const (
	WeekStateEmpty      WeekState = "empty"      // no data in either week
	WeekStateFirstWeek  WeekState = "first_week" // data only in the current week
	WeekStateComparison WeekState = "comparison" // data in both weeks
)

// WeekStats are the per-week figures feeding the comparison.
type WeekStats struct {
	TotalLogs    int          `json:"total_logs"`
	SymptomDays  int          `json:"symptom_days"` // distinct days with at least one log
	AvgSeverity  float64      `json:"avg_severity"`
	SeverityBand SeverityBand `json:"severity_band"`
	GoodDays     int          `json:"good_days"` // mood entries rated Good or Great
	MostFrequent string       `json:"most_frequent"`
}

// WeekComparison is the structured result of the compare-weeks
// operation. Exactly one narrative branch produces Message.
type WeekComparison struct {
	State    WeekState `json:"state"`
	ThisWeek WeekStats `json:"this_week"`
	LastWeek WeekStats `json:"last_week"`

	SymptomDaysChange float64 `json:"symptom_days_change"`
	SeverityChange    float64 `json:"severity_change"`
	GoodDaysChange    float64 `json:"good_days_change"`

	Message string `json:"message"`
}
