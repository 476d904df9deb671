package service

import (
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

// TimeOfDayFor maps a timestamp to its bucket using fixed local-hour
// boundaries: morning [6,12), afternoon [12,18), evening [18,22),
// night [22,6) (wraps midnight). Total: every hour maps to exactly one
// bucket.
func TimeOfDayFor(t time.Time) models.TimeOfDay {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return models.TimeOfDayMorning
	case h >= 12 && h < 18:
		return models.TimeOfDayAfternoon
	case h >= 18 && h < 22:
		return models.TimeOfDayEvening
	default:
		return models.TimeOfDayNight
	}
}

// bucketOf returns the stored bucket when present, deriving it from the
// occurrence time otherwise. Historical logs created before the bucket
// column existed still aggregate correctly through this fallback.
func bucketOf(log *models.SymptomLog) models.TimeOfDay {
	if log.TimeOfDay != nil && *log.TimeOfDay != "" {
		return *log.TimeOfDay
	}
	return TimeOfDayFor(log.LoggedAt)
}

// dayKey truncates a timestamp to its calendar date for distinct-day
// counting.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
