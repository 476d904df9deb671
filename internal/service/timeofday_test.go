package service

import (
	"testing"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

func TestTimeOfDayFor_AllHours(t *testing.T) {
	expected := map[int]models.TimeOfDay{
		0: models.TimeOfDayNight, 1: models.TimeOfDayNight, 2: models.TimeOfDayNight,
		3: models.TimeOfDayNight, 4: models.TimeOfDayNight, 5: models.TimeOfDayNight,
		6: models.TimeOfDayMorning, 7: models.TimeOfDayMorning, 8: models.TimeOfDayMorning,
		9: models.TimeOfDayMorning, 10: models.TimeOfDayMorning, 11: models.TimeOfDayMorning,
		12: models.TimeOfDayAfternoon, 13: models.TimeOfDayAfternoon, 14: models.TimeOfDayAfternoon,
		15: models.TimeOfDayAfternoon, 16: models.TimeOfDayAfternoon, 17: models.TimeOfDayAfternoon,
		18: models.TimeOfDayEvening, 19: models.TimeOfDayEvening, 20: models.TimeOfDayEvening,
		21: models.TimeOfDayEvening,
		22: models.TimeOfDayNight, 23: models.TimeOfDayNight,
	}

	for hour := 0; hour < 24; hour++ {
		ts := time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC)
		got := TimeOfDayFor(ts)
		if got != expected[hour] {
			t.Errorf("hour %d: expected %s, got %s", hour, expected[hour], got)
		}
	}
}

func TestBucketOf_PrefersStoredBucket(t *testing.T) {
	// Stored bucket disagrees with the timestamp; stored value wins.
	stored := models.TimeOfDayNight
	log := &models.SymptomLog{
		LoggedAt:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		TimeOfDay: &stored,
	}
	if got := bucketOf(log); got != models.TimeOfDayNight {
		t.Errorf("expected stored bucket night, got %s", got)
	}
}

func TestBucketOf_DerivesWhenMissing(t *testing.T) {
	log := &models.SymptomLog{
		LoggedAt: time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC),
	}
	if got := bucketOf(log); got != models.TimeOfDayEvening {
		t.Errorf("expected derived bucket evening, got %s", got)
	}

	empty := models.TimeOfDay("")
	log.TimeOfDay = &empty
	if got := bucketOf(log); got != models.TimeOfDayEvening {
		t.Errorf("expected derived bucket for empty stored value, got %s", got)
	}
}
