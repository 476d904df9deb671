package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

const (
	// minLogsForPattern is the per-symptom floor for the time-of-day and
	// weekday analyzers.
	minLogsForPattern = 3

	// patternShareThreshold is the share of a symptom's logs one bucket
	// or weekday must hold to be called a pattern.
	patternShareThreshold = 0.5
)

// buildInsights runs every analyzer over one aggregated window and
// returns the ranked, truncated insight list. Emission order is fixed
// (trend, time-of-day, trigger, weekday pattern, correlation) so the
// stable priority sort breaks ties predictably.
func buildInsights(logs []models.SymptomLog, nutrition []models.NutritionEntry, fitness []models.FitnessEntry, days int, now time.Time) []models.Insight {
	agg := aggregateLogs(logs, days, now)

	var insights []models.Insight
	insights = append(insights, trendInsights(agg)...)
	insights = append(insights, timeOfDayInsights(agg)...)
	insights = append(insights, triggerInsights(agg)...)
	insights = append(insights, weekdayInsights(agg)...)

	windowed := windowLogs(logs, days, now)
	if ci := workoutCorrelation(windowed, fitness); ci != nil {
		insights = append(insights, *ci)
	}
	if ci := nutritionCorrelation(windowed, nutrition); ci != nil {
		insights = append(insights, *ci)
	}

	return rankInsights(insights)
}

// windowLogs filters logs to the lookback window ending at now.
func windowLogs(logs []models.SymptomLog, days int, now time.Time) []models.SymptomLog {
	cutoff := now.AddDate(0, 0, -days)
	out := make([]models.SymptomLog, 0, len(logs))
	for _, log := range logs {
		if log.LoggedAt.Before(cutoff) || log.LoggedAt.After(now) {
			continue
		}
		out = append(out, log)
	}
	return out
}

// rankInsights sorts by priority (high first) with a stable tie-break
// on emission order, then truncates to the display cap.
func rankInsights(insights []models.Insight) []models.Insight {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() < insights[j].Priority.Rank()
	})
	if len(insights) > models.MaxInsights {
		insights = insights[:models.MaxInsights]
	}
	return insights
}

// trendInsights reports per-symptom severity trends. Improvements are
// progress insights; regressions are flagged for attention.
func trendInsights(agg *aggregates) []models.Insight {
	var insights []models.Insight

	for _, name := range agg.sortedNames() {
		series := agg.ByName[name]
		switch severityTrend(series.Severities) {
		case models.TrendDecreasing:
			insights = append(insights, models.Insight{
				Text:            fmt.Sprintf("Good news: %s is trending down in severity", name),
				Category:        models.CategoryProgress,
				Priority:        models.PriorityHigh,
				SymptomName:     name,
				ChangeDirection: models.ChangeDown,
			})
		case models.TrendIncreasing:
			insights = append(insights, models.Insight{
				Text:            fmt.Sprintf("%s is trending up in severity - worth keeping an eye on", name),
				Category:        models.CategoryProgress,
				Priority:        models.PriorityHigh,
				SymptomName:     name,
				ChangeDirection: models.ChangeUp,
			})
		}
	}

	return insights
}

// timeOfDayInsights flags symptoms concentrated in a single time
// bucket.
func timeOfDayInsights(agg *aggregates) []models.Insight {
	var insights []models.Insight

	for _, name := range agg.sortedNames() {
		buckets := agg.TimeBuckets[name]
		total := len(agg.ByName[name].Severities)
		if total < minLogsForPattern {
			continue
		}

		var top models.TimeOfDay
		topCount := 0
		for _, bucket := range []models.TimeOfDay{
			models.TimeOfDayMorning,
			models.TimeOfDayAfternoon,
			models.TimeOfDayEvening,
			models.TimeOfDayNight,
		} {
			if buckets[bucket] > topCount {
				top = bucket
				topCount = buckets[bucket]
			}
		}
		if float64(topCount) < patternShareThreshold*float64(total) {
			continue
		}

		insights = append(insights, models.Insight{
			Text:        fmt.Sprintf("%s tends to hit in the %s (%s)", name, top, top.RangeLabel()),
			Category:    models.CategoryTimeOfDay,
			Priority:    models.PriorityMedium,
			SymptomName: name,
			TimeOfDay:   top,
		})
	}

	return insights
}

// weekdayInsights flags symptoms concentrated on a single day of the
// week.
func weekdayInsights(agg *aggregates) []models.Insight {
	var insights []models.Insight

	for _, name := range agg.sortedNames() {
		weekdays := agg.Weekdays[name]
		total := len(agg.ByName[name].Severities)
		if total < minLogsForPattern {
			continue
		}

		var top time.Weekday
		topCount := 0
		for day := time.Sunday; day <= time.Saturday; day++ {
			if weekdays[day] > topCount {
				top = day
				topCount = weekdays[day]
			}
		}
		if float64(topCount) < patternShareThreshold*float64(total) {
			continue
		}

		insights = append(insights, models.Insight{
			Text:        fmt.Sprintf("%s shows up most often on %ss", name, top),
			Category:    models.CategoryPattern,
			Priority:    models.PriorityMedium,
			SymptomName: name,
			DayOfWeek:   top.String(),
		})
	}

	return insights
}
