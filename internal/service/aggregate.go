package service

import (
	"sort"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

// symptomSeries collects one symptom's occurrences within a window,
// kept in chronological order for trend detection.
type symptomSeries struct {
	Severities []float64
	Dates      []time.Time
	Triggers   map[string]int
}

// aggregates is the grouped view of a window of symptom logs.
type aggregates struct {
	ByName      map[string]*symptomSeries
	TimeBuckets map[string]map[models.TimeOfDay]int
	Weekdays    map[string]map[time.Weekday]int
	Total       int
}

// aggregateLogs groups logs by symptom name, time-of-day bucket, and
// weekday. Logs outside the lookback window ending at now are excluded
// before grouping. Empty input yields empty maps.
func aggregateLogs(logs []models.SymptomLog, days int, now time.Time) *aggregates {
	agg := &aggregates{
		ByName:      make(map[string]*symptomSeries),
		TimeBuckets: make(map[string]map[models.TimeOfDay]int),
		Weekdays:    make(map[string]map[time.Weekday]int),
	}

	cutoff := now.AddDate(0, 0, -days)
	inWindow := make([]models.SymptomLog, 0, len(logs))
	for _, log := range logs {
		if log.LoggedAt.Before(cutoff) || log.LoggedAt.After(now) {
			continue
		}
		inWindow = append(inWindow, log)
	}

	// Chronological order so half-split trends read oldest-first.
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].LoggedAt.Before(inWindow[j].LoggedAt)
	})

	for i := range inWindow {
		log := &inWindow[i]
		name := log.SymptomName()

		series, ok := agg.ByName[name]
		if !ok {
			series = &symptomSeries{Triggers: make(map[string]int)}
			agg.ByName[name] = series
		}
		series.Severities = append(series.Severities, float64(log.Severity))
		series.Dates = append(series.Dates, log.LoggedAt)
		for _, trigger := range log.Triggers {
			series.Triggers[trigger]++
		}

		buckets, ok := agg.TimeBuckets[name]
		if !ok {
			buckets = make(map[models.TimeOfDay]int)
			agg.TimeBuckets[name] = buckets
		}
		buckets[bucketOf(log)]++

		weekdays, ok := agg.Weekdays[name]
		if !ok {
			weekdays = make(map[time.Weekday]int)
			agg.Weekdays[name] = weekdays
		}
		weekdays[log.LoggedAt.Weekday()]++

		agg.Total++
	}

	return agg
}

// sortedNames returns the symptom names in deterministic order so
// analyzer emission order is stable across invocations.
func (a *aggregates) sortedNames() []string {
	names := make([]string, 0, len(a.ByName))
	for name := range a.ByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
