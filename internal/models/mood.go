package models

import "time"

// Mood is the ordinal daily mood value (1-4 scale).
type Mood int

const (
	MoodRough Mood = 1
	MoodOkay  Mood = 2
	MoodGood  Mood = 3
	MoodGreat Mood = 4
)

// Label returns the display name for a mood value.
func (m Mood) Label() string {
	switch m {
	case MoodRough:
		return "Rough"
	case MoodOkay:
		return "Okay"
	case MoodGood:
		return "Good"
	case MoodGreat:
		return "Great"
	default:
		return "Unknown"
	}
}

// Valid reports whether the mood is within the 1-4 scale.
func (m Mood) Valid() bool {
	return m >= MoodRough && m <= MoodGreat
}

// Positive reports whether the mood counts as a "good day" (Good or
// Great) for week-over-week comparison.
func (m Mood) Positive() bool {
	return m >= MoodGood
}

// MoodEntry is a daily mood check-in. At most one entry exists per
// (user, date); writes upsert.
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"` // calendar date, "2006-01-02"
	Mood      Mood      `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertMoodRequest is the payload for recording today's mood. Date
// defaults to today when omitted.
type UpsertMoodRequest struct {
	Mood Mood   `json:"mood" binding:"required"`
	Date string `json:"date"`
}
