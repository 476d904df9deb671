package service

import (
	"testing"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

// mkLog builds a symptom log with a joined symptom name, the shape
// repository fetches produce.
func mkLog(name string, severity models.Severity, at time.Time, triggers ...string) models.SymptomLog {
	return models.SymptomLog{
		ID:       name + at.Format(time.RFC3339),
		UserID:   "user-1",
		Severity: severity,
		Triggers: triggers,
		LoggedAt: at,
		Symptom:  &models.SymptomRef{Name: name, Icon: "🔥"},
	}
}

func TestAggregateLogs_Empty(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	agg := aggregateLogs(nil, 30, now)

	if agg.Total != 0 {
		t.Errorf("expected total 0, got %d", agg.Total)
	}
	if len(agg.ByName) != 0 {
		t.Errorf("expected no series, got %d", len(agg.ByName))
	}
}

func TestAggregateLogs_WindowFiltering(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	logs := []models.SymptomLog{
		mkLog("Hot flashes", models.SeverityMild, now.AddDate(0, 0, -1)),
		mkLog("Hot flashes", models.SeverityMild, now.AddDate(0, 0, -31)), // outside
		mkLog("Hot flashes", models.SeverityMild, now.Add(time.Hour)),     // future
	}

	agg := aggregateLogs(logs, 30, now)
	if agg.Total != 1 {
		t.Errorf("expected 1 log in window, got %d", agg.Total)
	}
}

func TestAggregateLogs_ChronologicalSeries(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	// Deliberately newest-first, as repository fetches return them.
	logs := []models.SymptomLog{
		mkLog("Fatigue", models.SeveritySevere, now.AddDate(0, 0, -1)),
		mkLog("Fatigue", models.SeverityModerate, now.AddDate(0, 0, -5)),
		mkLog("Fatigue", models.SeverityMild, now.AddDate(0, 0, -10)),
	}

	agg := aggregateLogs(logs, 30, now)
	series := agg.ByName["Fatigue"]
	if series == nil {
		t.Fatal("expected a Fatigue series")
	}

	want := []float64{1, 2, 3}
	if len(series.Severities) != len(want) {
		t.Fatalf("expected %d severities, got %d", len(want), len(series.Severities))
	}
	for i, v := range want {
		if series.Severities[i] != v {
			t.Errorf("severity[%d] = %v, want %v (oldest first)", i, series.Severities[i], v)
		}
	}
}

func TestAggregateLogs_GroupsByBucketAndWeekday(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC) // a Sunday
	monday := time.Date(2026, 3, 9, 19, 0, 0, 0, time.UTC)
	logs := []models.SymptomLog{
		mkLog("Insomnia", models.SeverityModerate, monday),
		mkLog("Insomnia", models.SeverityModerate, monday.AddDate(0, 0, 1)), // Tuesday evening
		mkLog("Insomnia", models.SeverityModerate, monday.Add(4*time.Hour)), // Monday night 23:00
	}

	agg := aggregateLogs(logs, 30, now)

	buckets := agg.TimeBuckets["Insomnia"]
	if buckets[models.TimeOfDayEvening] != 2 {
		t.Errorf("expected 2 evening logs, got %d", buckets[models.TimeOfDayEvening])
	}
	if buckets[models.TimeOfDayNight] != 1 {
		t.Errorf("expected 1 night log, got %d", buckets[models.TimeOfDayNight])
	}

	weekdays := agg.Weekdays["Insomnia"]
	if weekdays[time.Monday] != 2 {
		t.Errorf("expected 2 Monday logs, got %d", weekdays[time.Monday])
	}
	if weekdays[time.Tuesday] != 1 {
		t.Errorf("expected 1 Tuesday log, got %d", weekdays[time.Tuesday])
	}
}

func TestAggregateLogs_CountsTriggers(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	logs := []models.SymptomLog{
		mkLog("Headaches", models.SeverityMild, now.AddDate(0, 0, -1), "Stress", "Coffee"),
		mkLog("Headaches", models.SeverityMild, now.AddDate(0, 0, -2), "Stress"),
	}

	agg := aggregateLogs(logs, 30, now)
	series := agg.ByName["Headaches"]
	if series.Triggers["Stress"] != 2 {
		t.Errorf("expected Stress counted twice, got %d", series.Triggers["Stress"])
	}
	if series.Triggers["Coffee"] != 1 {
		t.Errorf("expected Coffee counted once, got %d", series.Triggers["Coffee"])
	}
}

func TestSortedNames_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	logs := []models.SymptomLog{
		mkLog("Night sweats", models.SeverityMild, now.AddDate(0, 0, -1)),
		mkLog("Anxiety", models.SeverityMild, now.AddDate(0, 0, -2)),
		mkLog("Fatigue", models.SeverityMild, now.AddDate(0, 0, -3)),
	}

	agg := aggregateLogs(logs, 30, now)
	names := agg.sortedNames()
	want := []string{"Anxiety", "Fatigue", "Night sweats"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestAggregateLogs_UnknownNameForDeletedSymptom(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	log := mkLog("", models.SeverityMild, now.AddDate(0, 0, -1))
	log.Symptom = nil

	agg := aggregateLogs([]models.SymptomLog{log}, 30, now)
	if _, ok := agg.ByName["Unknown"]; !ok {
		t.Error("expected deleted-symptom log grouped under Unknown")
	}
}
