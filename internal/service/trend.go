package service

import "github.com/willowhealth/willow-api/internal/models"

// trendThreshold is the dead zone (in percent) inside which a change is
// not called a trend.
const trendThreshold = 10.0

// severityTrend classifies a chronologically ascending severity series
// by comparing the mean of its first half against the second half.
// Fewer than four points is always stable: insufficient data, not a
// flat line.
func severityTrend(severities []float64) models.Trend {
	n := len(severities)
	if n < 4 {
		return models.TrendStable
	}

	mid := n / 2
	firstMean := mean(severities[:mid])
	secondMean := mean(severities[mid:])
	if firstMean == 0 {
		return models.TrendStable
	}

	change := (secondMean - firstMean) / firstMean * 100
	switch {
	case change < -trendThreshold:
		return models.TrendDecreasing
	case change > trendThreshold:
		return models.TrendIncreasing
	default:
		return models.TrendStable
	}
}

// percentChange computes the relative change from baseline to current.
// A zero baseline reports 0 when current is also zero and 100 when
// current is positive.
func percentChange(baseline, current float64) float64 {
	if baseline == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - baseline) / baseline * 100
}

// progressImproved reports whether the change from the previous window
// counts as real progress: frequency down at least 20% AND severity
// down at least 10%. Improvement claims require stronger evidence than
// regression warnings.
func progressImproved(prevCount, curCount int, prevSeverity, curSeverity float64) bool {
	countChange := percentChange(float64(prevCount), float64(curCount))
	severityChange := percentChange(prevSeverity, curSeverity)
	return countChange <= -20 && severityChange <= -10
}

// progressWorsened reports whether the change counts as getting worse:
// frequency up at least 20% OR severity up at least 10%.
func progressWorsened(prevCount, curCount int, prevSeverity, curSeverity float64) bool {
	countChange := percentChange(float64(prevCount), float64(curCount))
	severityChange := percentChange(prevSeverity, curSeverity)
	return countChange >= 20 || severityChange >= 10
}
