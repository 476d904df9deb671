package models

import "time"

// Severity is the ordinal severity of a symptom occurrence (1-3 scale).
type Severity int

const (
	SeverityMild     Severity = 1
	SeverityModerate Severity = 2
	SeveritySevere   Severity = 3
)

// Label returns the display name for a severity value.
func (s Severity) Label() string {
	switch s {
	case SeverityMild:
		return "Mild"
	case SeverityModerate:
		return "Moderate"
	case SeveritySevere:
		return "Severe"
	default:
		return "Unknown"
	}
}

// Valid reports whether the severity is within the 1-3 scale.
func (s Severity) Valid() bool {
	return s >= SeverityMild && s <= SeveritySevere
}

// TimeOfDay is the bucket a log's occurrence time falls into.
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"   // [6:00, 12:00)
	TimeOfDayAfternoon TimeOfDay = "afternoon" // [12:00, 18:00)
	TimeOfDayEvening   TimeOfDay = "evening"   // [18:00, 22:00)
	TimeOfDayNight     TimeOfDay = "night"     // [22:00, 6:00)
)

// RangeLabel returns the hour range shown to users, e.g. "6pm-10pm".
func (t TimeOfDay) RangeLabel() string {
	switch t {
	case TimeOfDayMorning:
		return "6am-12pm"
	case TimeOfDayAfternoon:
		return "12pm-6pm"
	case TimeOfDayEvening:
		return "6pm-10pm"
	case TimeOfDayNight:
		return "10pm-6am"
	default:
		return string(t)
	}
}

// Symptom is a per-user symptom definition. Immutable after creation
// except for deletion.
type Symptom struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// SymptomRef carries the joined display fields from the symptoms table.
type SymptomRef struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// SymptomLog is a single timestamped, severity-rated occurrence of a
// symptom. LoggedAt is the occurrence time, not the creation time; logs
// may be backdated.
type SymptomLog struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	SymptomID string     `json:"symptom_id"`
	Severity  Severity   `json:"severity"`
	Triggers  []string   `json:"triggers"`
	Notes     *string    `json:"notes,omitempty"`
	LoggedAt  time.Time  `json:"logged_at"`
	TimeOfDay *TimeOfDay `json:"time_of_day,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	// Joined from the symptoms table on fetch
	Symptom *SymptomRef `json:"symptoms,omitempty"`
}

// SymptomName returns the joined display name, or "Unknown" when the
// definition was deleted out from under the log.
func (l *SymptomLog) SymptomName() string {
	if l.Symptom != nil && l.Symptom.Name != "" {
		return l.Symptom.Name
	}
	return "Unknown"
}

// DefaultSymptom is an entry in the seed catalog.
type DefaultSymptom struct {
	Name string
	Icon string
}

// DefaultSymptoms is the catalog seeded for each user on first use.
var DefaultSymptoms = []DefaultSymptom{
	{Name: "Hot flashes", Icon: "🔥"},
	{Name: "Night sweats", Icon: "💧"},
	{Name: "Fatigue", Icon: "😫"},
	{Name: "Brain fog", Icon: "🌫️"},
	{Name: "Mood swings", Icon: "🎭"},
	{Name: "Anxiety", Icon: "😰"},
	{Name: "Headaches", Icon: "🤕"},
	{Name: "Joint pain", Icon: "🦴"},
	{Name: "Bloating", Icon: "🎈"},
	{Name: "Insomnia", Icon: "😵"},
	{Name: "Weight gain", Icon: "⚖️"},
	{Name: "Low libido", Icon: "💔"},
}

// TriggerOptions is the fixed set of suggested trigger tags. Logs may
// also carry free-text triggers outside this list.
var TriggerOptions = []string{
	"Stress",
	"Poor sleep",
	"Alcohol",
	"Coffee",
	"Spicy food",
	"Skipped meal",
	"Exercise",
	"Hot weather",
	"Work",
	"Travel",
	"Hormonal",
	"Unknown",
}

// CreateSymptomRequest is the payload for creating a custom symptom.
type CreateSymptomRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon" binding:"required"`
}

// LogSymptomRequest is the payload for logging a symptom occurrence.
// LoggedAt defaults to now when omitted.
type LogSymptomRequest struct {
	SymptomID string     `json:"symptom_id" binding:"required"`
	Severity  Severity   `json:"severity" binding:"required"`
	Triggers  []string   `json:"triggers"`
	Notes     *string    `json:"notes"`
	LoggedAt  *time.Time `json:"logged_at"`
}

// UpdateSymptomLogRequest is the payload for editing an existing log.
type UpdateSymptomLogRequest struct {
	Severity *Severity  `json:"severity"`
	Triggers []string   `json:"triggers"`
	Notes    *string    `json:"notes"`
	LoggedAt *time.Time `json:"logged_at"`
}
