package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

// compareWeeks computes this week (last 7 days including today) against
// last week (the preceding 7 days) and selects exactly one narrative
// branch, first match wins.
func compareWeeks(logs []models.SymptomLog, moods []models.MoodEntry, now time.Time) *models.WeekComparison {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisWeekStart := today.AddDate(0, 0, -6)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)

	var thisWeekLogs, lastWeekLogs []models.SymptomLog
	for _, log := range logs {
		day := time.Date(log.LoggedAt.Year(), log.LoggedAt.Month(), log.LoggedAt.Day(), 0, 0, 0, 0, log.LoggedAt.Location())
		switch {
		case !day.Before(thisWeekStart):
			thisWeekLogs = append(thisWeekLogs, log)
		case !day.Before(lastWeekStart):
			lastWeekLogs = append(lastWeekLogs, log)
		}
	}

	thisWeek := weekStats(thisWeekLogs, moods, thisWeekStart, thisWeekStart.AddDate(0, 0, 7))
	lastWeek := weekStats(lastWeekLogs, moods, lastWeekStart, thisWeekStart)

	cmp := &models.WeekComparison{
		ThisWeek: thisWeek,
		LastWeek: lastWeek,
	}

	switch {
	case thisWeek.TotalLogs == 0 && lastWeek.TotalLogs == 0:
		cmp.State = models.WeekStateEmpty
		cmp.Message = "No symptoms logged yet. Start tracking to see how your weeks compare."
		return cmp
	case lastWeek.TotalLogs == 0:
		cmp.State = models.WeekStateFirstWeek
		cmp.Message = fmt.Sprintf("First week of tracking: %d symptoms logged across %d days. Keep going - next week you'll see a comparison.",
			thisWeek.TotalLogs, thisWeek.SymptomDays)
		return cmp
	}

	cmp.State = models.WeekStateComparison
	cmp.SymptomDaysChange = percentChange(float64(lastWeek.SymptomDays), float64(thisWeek.SymptomDays))
	cmp.SeverityChange = percentChange(lastWeek.AvgSeverity, thisWeek.AvgSeverity)
	cmp.GoodDaysChange = percentChange(float64(lastWeek.GoodDays), float64(thisWeek.GoodDays))
	cmp.Message = selectWeekMessage(cmp)
	return cmp
}

// weekStats computes one week's figures. Good days come from mood
// entries rated Good or Great within the window.
func weekStats(logs []models.SymptomLog, moods []models.MoodEntry, start, end time.Time) models.WeekStats {
	stats := models.WeekStats{MostFrequent: "None"}

	days := make(map[string]bool)
	counts := make(map[string]int)
	var order []string
	var totalSeverity float64
	for _, log := range logs {
		days[dayKey(log.LoggedAt)] = true
		name := log.SymptomName()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
		totalSeverity += float64(log.Severity)
	}

	stats.TotalLogs = len(logs)
	stats.SymptomDays = len(days)
	if len(logs) > 0 {
		stats.AvgSeverity = totalSeverity / float64(len(logs))
	}
	stats.SeverityBand = models.BandForAverage(stats.AvgSeverity)

	// Ties go to the first symptom encountered in log order.
	best := 0
	for _, name := range order {
		if counts[name] > best {
			best = counts[name]
			stats.MostFrequent = name
		}
	}

	for _, m := range moods {
		day, err := time.ParseInLocation("2006-01-02", m.Date, start.Location())
		if err != nil {
			continue
		}
		if !day.Before(start) && day.Before(end) && m.Mood.Positive() {
			stats.GoodDays++
		}
	}

	return stats
}

// selectWeekMessage walks the narrative rules in priority order and
// returns the first match. Boundary overlaps between rules are resolved
// by this order, not by re-partitioning the conditions.
func selectWeekMessage(cmp *models.WeekComparison) string {
	this, last := cmp.ThisWeek, cmp.LastWeek

	switch {
	case cmp.SeverityChange < -10 && last.AvgSeverity >= 2.5 && this.AvgSeverity < 2.5:
		return fmt.Sprintf("Your average severity improved from Severe to %s this week. That's real progress.",
			this.SeverityBand)

	case cmp.GoodDaysChange > 20 && this.GoodDays > last.GoodDays:
		return fmt.Sprintf("You had %d good days this week vs %d last week. More of what's working!",
			this.GoodDays, last.GoodDays)

	case cmp.SymptomDaysChange < -20 && this.SymptomDays < last.SymptomDays:
		return fmt.Sprintf("Symptoms on %d days this week, down from %d last week.",
			this.SymptomDays, last.SymptomDays)

	case cmp.SeverityChange > 10 || cmp.SymptomDaysChange > 20:
		return "This week was tougher than last. Be gentle with yourself - rough stretches happen."

	case cmp.GoodDaysChange < -20 && this.GoodDays == 0:
		return "Symptoms were up and good days were scarce this week. Hang in there."

	case math.Abs(cmp.SeverityChange) <= 10 && math.Abs(cmp.SymptomDaysChange) <= 20 &&
		math.Abs(cmp.GoodDaysChange) <= 20 && (this.SymptomDays > 0 || last.SymptomDays > 0):
		return "This week looked a lot like last week. Steady is its own kind of progress."

	default:
		return "Keep tracking - the more you log, the clearer your patterns get."
	}
}

// weeklyInsights builds the template-based weekly list. Pure data
// reflection with no renderer involved.
func weeklyInsights(currentWeekLogs, previousWeekLogs []models.SymptomLog, moods []models.MoodEntry, now time.Time) []models.WeeklyInsight {
	var insights []models.WeeklyInsight

	counts := make(map[string]int)
	var order []string
	for _, log := range currentWeekLogs {
		name := log.SymptomName()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	// Frequency
	if len(currentWeekLogs) > 0 && len(order) > 0 {
		top := order[0]
		insights = append(insights, models.WeeklyInsight{
			Type: "frequency",
			Content: fmt.Sprintf("You logged %d symptom%s this week. Most frequent: %s (%d).",
				len(currentWeekLogs), plural(len(currentWeekLogs)), top, counts[top]),
			Data: map[string]any{"total_logs": len(currentWeekLogs), "most_frequent": top, "count": counts[top]},
		})
	}

	// Comparison for the top symptom, only when last week has data
	if len(order) > 0 && len(previousWeekLogs) > 0 {
		top := order[0]
		prevCount := 0
		for _, log := range previousWeekLogs {
			if log.SymptomName() == top {
				prevCount++
			}
		}
		if prevCount > 0 {
			insights = append(insights, models.WeeklyInsight{
				Type:    "comparison",
				Content: fmt.Sprintf("%s: %d this week vs. %d last week.", top, counts[top], prevCount),
				Data:    map[string]any{"symptom_name": top, "this_week": counts[top], "last_week": prevCount},
			})
		}
	}

	// Consistency, always shown
	trackedDays := make(map[string]bool)
	for _, log := range currentWeekLogs {
		trackedDays[dayKey(log.LoggedAt)] = true
	}
	insights = append(insights, models.WeeklyInsight{
		Type:    "consistency",
		Content: fmt.Sprintf("You tracked %d out of 7 days this week.", len(trackedDays)),
		Data:    map[string]any{"days_tracked": len(trackedDays)},
	})

	// Triggers tagged 3+ times, at most two
	triggerCounts := make(map[string]int)
	var triggerOrder []string
	for _, log := range currentWeekLogs {
		for _, trigger := range log.Triggers {
			if triggerCounts[trigger] == 0 {
				triggerOrder = append(triggerOrder, trigger)
			}
			triggerCounts[trigger]++
		}
	}
	sort.SliceStable(triggerOrder, func(i, j int) bool {
		return triggerCounts[triggerOrder[i]] > triggerCounts[triggerOrder[j]]
	})
	shown := 0
	for _, trigger := range triggerOrder {
		if triggerCounts[trigger] < 3 || shown >= 2 {
			continue
		}
		insights = append(insights, models.WeeklyInsight{
			Type: "trigger_pattern",
			Content: fmt.Sprintf("You tagged '%s' on %d log%s this week.",
				trigger, triggerCounts[trigger], plural(triggerCounts[trigger])),
			Data: map[string]any{"trigger_name": trigger, "count": triggerCounts[trigger]},
		})
		shown++
	}

	// Time pattern when 4+ logs share a bucket
	timeCounts := make(map[models.TimeOfDay]int)
	for i := range currentWeekLogs {
		timeCounts[bucketOf(&currentWeekLogs[i])]++
	}
	var topTime models.TimeOfDay
	topTimeCount := 0
	for _, bucket := range []models.TimeOfDay{
		models.TimeOfDayMorning,
		models.TimeOfDayAfternoon,
		models.TimeOfDayEvening,
		models.TimeOfDayNight,
	} {
		if timeCounts[bucket] > topTimeCount {
			topTime = bucket
			topTimeCount = timeCounts[bucket]
		}
	}
	if topTimeCount >= 4 {
		insights = append(insights, models.WeeklyInsight{
			Type:    "time_pattern",
			Content: fmt.Sprintf("Most symptoms logged in the %s.", topTime),
			Data:    map[string]any{"time_of_day": string(topTime), "count": topTimeCount},
		})
	}

	// Good days from mood check-ins
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -6)
	goodDays := 0
	for _, m := range moods {
		day, err := time.ParseInLocation("2006-01-02", m.Date, now.Location())
		if err != nil {
			continue
		}
		if !day.Before(weekStart) && !day.After(today) && m.Mood.Positive() {
			goodDays++
		}
	}
	if goodDays > 0 {
		insights = append(insights, models.WeeklyInsight{
			Type:    "good_days",
			Content: fmt.Sprintf("You had %d good day%s this week.", goodDays, plural(goodDays)),
			Data:    map[string]any{"count": goodDays},
		})
	}

	// Severity breakdown when 3+ logs
	var mild, moderate, severe int
	for _, log := range currentWeekLogs {
		switch log.Severity {
		case models.SeverityMild:
			mild++
		case models.SeverityModerate:
			moderate++
		case models.SeveritySevere:
			severe++
		}
	}
	if mild+moderate+severe >= 3 {
		var parts []string
		if mild > 0 {
			parts = append(parts, fmt.Sprintf("%d mild", mild))
		}
		if moderate > 0 {
			parts = append(parts, fmt.Sprintf("%d moderate", moderate))
		}
		if severe > 0 {
			parts = append(parts, fmt.Sprintf("%d severe", severe))
		}
		insights = append(insights, models.WeeklyInsight{
			Type:    "severity",
			Content: fmt.Sprintf("Severity: %s.", strings.Join(parts, ", ")),
			Data:    map[string]any{"mild": mild, "moderate": moderate, "severe": severe},
		})
	}

	return insights
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
