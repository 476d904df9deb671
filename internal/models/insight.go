package models

import "time"

// Trend classifies whether a series is increasing, decreasing, or
// stable over a window, via half-split mean comparison.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// InsightCategory is the kind of pattern an insight describes.
type InsightCategory string

const (
	CategoryProgress    InsightCategory = "progress"
	CategoryPattern     InsightCategory = "pattern"
	CategoryCorrelation InsightCategory = "correlation"
	CategoryTimeOfDay   InsightCategory = "time-of-day"
	CategoryTrigger     InsightCategory = "trigger"
)

// InsightPriority ranks insights for display.
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Rank returns a sortable weight, lower is more important.
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ChangeDirection indicates which way a tracked value moved.
type ChangeDirection string

const (
	ChangeUp   ChangeDirection = "up"
	ChangeDown ChangeDirection = "down"
)

// Insight is a ranked, plain-language derived statement. Computed per
// analysis invocation, never persisted.
type Insight struct {
	Text     string          `json:"text"`
	Category InsightCategory `json:"category"`
	Priority InsightPriority `json:"priority"`

	// Typed detail fields so callers can render structured UI and
	// dedupe already-seen insights.
	SymptomName     string          `json:"symptom_name,omitempty"`
	TriggerName     string          `json:"trigger_name,omitempty"`
	TimeOfDay       TimeOfDay       `json:"time_of_day,omitempty"`
	DayOfWeek       string          `json:"day_of_week,omitempty"`
	ChangePercent   int             `json:"change_percent,omitempty"`
	ChangeDirection ChangeDirection `json:"change_direction,omitempty"`
}

// MaxInsights is the cap applied after ranking.
const MaxInsights = 8

// WeeklyInsight is a template-generated weekly statement, pure data
// reflection with no renderer involved.
type WeeklyInsight struct {
	Type    string         `json:"type"`
	Content string         `json:"content"`
	Data    map[string]any `json:"data"`
}

// ActionSteps are the three-tier suggestions in a narrative insight.
type ActionSteps struct {
	Easy     string `json:"easy"`
	Medium   string `json:"medium"`
	Advanced string `json:"advanced"`
}

// NarrativeInsight is the structured output of the narrative renderer.
// When the renderer returns something unparseable a fallback is
// synthesized; callers always receive a well-formed value.
type NarrativeInsight struct {
	PatternHeadline string      `json:"patternHeadline"`
	Why             string      `json:"why"`
	WhatsWorking    *string     `json:"whatsWorking,omitempty"`
	ActionSteps     ActionSteps `json:"actionSteps"`
	DoctorNote      string      `json:"doctorNote"`
	Trend           string      `json:"trend"` // improving, worsening, stable
	WhyThisMatters  string      `json:"whyThisMatters,omitempty"`
}

// InsightsResponse is the payload of the generate-insights operation.
type InsightsResponse struct {
	Narrative  NarrativeInsight `json:"narrative"`
	Insights   []Insight        `json:"insights"`
	Cached     bool             `json:"cached"`
	ComputedAt time.Time        `json:"computed_at"`
}

// SymptomStats are the per-symptom aggregates over a window.
type SymptomStats struct {
	Count       int     `json:"count"`
	AvgSeverity float64 `json:"avg_severity"`
	Trend       Trend   `json:"trend"`
}

// SymptomSummary aggregates symptom logs over a window.
type SymptomSummary struct {
	Total       int                     `json:"total"`
	ByName      map[string]SymptomStats `json:"by_name"`
	AvgSeverity float64                 `json:"avg_severity"`
	Trend       Trend                   `json:"trend"`
	Recent      []SymptomLog            `json:"recent"`
}

// NutritionSummary aggregates nutrition entries over a window.
type NutritionSummary struct {
	Total       int              `json:"total"`
	AvgCalories int              `json:"avg_calories"`
	ByMealType  map[string]int   `json:"by_meal_type"`
	Recent      []NutritionEntry `json:"recent"`
}

// FitnessSummary aggregates fitness entries over a window.
type FitnessSummary struct {
	Total              int            `json:"total"`
	AvgWorkoutsPerWeek float64        `json:"avg_workouts_per_week"`
	ByType             map[string]int `json:"by_type"`
	AvgDuration        int            `json:"avg_duration"`
	Recent             []FitnessEntry `json:"recent"`
}

// PatternSummary holds the plain-language statements derived from the
// cross-signal analyzers.
type PatternSummary struct {
	Correlations []string `json:"correlations"`
	Insights     []string `json:"insights"`
}

// TrackerSummary is the full derived view over one analysis window.
type TrackerSummary struct {
	Symptoms  SymptomSummary   `json:"symptoms"`
	Nutrition NutritionSummary `json:"nutrition"`
	Fitness   FitnessSummary   `json:"fitness"`
	Patterns  PatternSummary   `json:"patterns"`
	Ranked    []Insight        `json:"ranked_insights"`
}
