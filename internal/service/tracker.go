package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
)

const recentEntryLimit = 5

type trackerService struct {
	logRepo       repository.SymptomLogRepository
	nutritionRepo repository.NutritionRepository
	fitnessRepo   repository.FitnessRepository
	log           logger.Logger
}

// NewTrackerService creates a new tracker service
func NewTrackerService(
	logRepo repository.SymptomLogRepository,
	nutritionRepo repository.NutritionRepository,
	fitnessRepo repository.FitnessRepository,
	log logger.Logger,
) TrackerService {
	return &trackerService{
		logRepo:       logRepo,
		nutritionRepo: nutritionRepo,
		fitnessRepo:   fitnessRepo,
		log:           log,
	}
}

// Summarize fetches the window concurrently and derives the tracker
// summary. A failed fetch degrades to an empty slice so one slow table
// never blanks the whole view.
func (s *trackerService) Summarize(ctx context.Context, userID string, days int) (*models.TrackerSummary, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -days)

	var (
		logs      []models.SymptomLog
		nutrition []models.NutritionEntry
		fitness   []models.FitnessEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.logRepo.GetByUserIDAndDateRange(gctx, userID, start, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("symptom log fetch failed, proceeding with empty window", logger.Err(err))
			logs = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		nutrition, err = s.nutritionRepo.GetByUserIDAndDateRange(gctx, userID, start, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("nutrition fetch failed, proceeding with empty window", logger.Err(err))
			nutrition = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fitness, err = s.fitnessRepo.GetByUserIDAndDateRange(gctx, userID, start, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("fitness fetch failed, proceeding with empty window", logger.Err(err))
			fitness = nil
		}
		return nil
	})
	_ = g.Wait()

	summary := summarizeTracker(logs, nutrition, fitness, days, now)
	return summary, nil
}

// summarizeTracker derives the full summary from one in-memory window.
func summarizeTracker(logs []models.SymptomLog, nutrition []models.NutritionEntry, fitness []models.FitnessEntry, days int, now time.Time) *models.TrackerSummary {
	agg := aggregateLogs(logs, days, now)
	windowed := windowLogs(logs, days, now)

	// Per-symptom stats
	byName := make(map[string]models.SymptomStats, len(agg.ByName))
	var totalSeverity float64
	var allSeverities []float64
	for _, name := range agg.sortedNames() {
		series := agg.ByName[name]
		avg := mean(series.Severities)
		byName[name] = models.SymptomStats{
			Count:       len(series.Severities),
			AvgSeverity: round1(avg),
			Trend:       severityTrend(series.Severities),
		}
	}
	for _, log := range windowed {
		totalSeverity += float64(log.Severity)
		allSeverities = append(allSeverities, float64(log.Severity))
	}

	symptoms := models.SymptomSummary{
		Total:  len(windowed),
		ByName: byName,
		Trend:  severityTrend(allSeverities),
		Recent: recentLogs(windowed),
	}
	if len(windowed) > 0 {
		symptoms.AvgSeverity = round1(totalSeverity / float64(len(windowed)))
	}

	// Nutrition
	mealTypes := make(map[string]int)
	var totalCalories, calorieCount int
	for _, n := range nutrition {
		mealTypes[n.MealType]++
		if n.Calories != nil {
			totalCalories += *n.Calories
			calorieCount++
		}
	}
	nutritionSummary := models.NutritionSummary{
		Total:      len(nutrition),
		ByMealType: mealTypes,
		Recent:     recentNutrition(nutrition),
	}
	if calorieCount > 0 {
		nutritionSummary.AvgCalories = int(math.Round(float64(totalCalories) / float64(calorieCount)))
	}

	// Fitness
	exerciseTypes := make(map[string]int)
	var totalDuration, durationCount int
	for _, f := range fitness {
		exerciseTypes[f.ExerciseType]++
		if f.DurationMinutes != nil {
			totalDuration += *f.DurationMinutes
			durationCount++
		}
	}
	fitnessSummary := models.FitnessSummary{
		Total:              len(fitness),
		ByType:             exerciseTypes,
		AvgWorkoutsPerWeek: workoutsPerWeek(fitness),
		Recent:             recentFitness(fitness),
	}
	if durationCount > 0 {
		fitnessSummary.AvgDuration = int(math.Round(float64(totalDuration) / float64(durationCount)))
	}

	// Plain-language pattern notes
	var correlations, notes []string
	if ci := workoutCorrelation(windowed, fitness); ci != nil {
		correlations = append(correlations, ci.Text)
	}
	if len(nutrition) > 0 {
		if float64(mealTypes["breakfast"])/float64(len(nutrition)) < 0.3 {
			notes = append(notes, "Breakfast logging is infrequent - consider tracking morning meals for better insights")
		}
	}
	if len(fitness) > 0 {
		if fitnessSummary.AvgWorkoutsPerWeek < 2 {
			notes = append(notes, "Exercise frequency is low - consider increasing to 2-3 times per week for better symptom management")
		} else if fitnessSummary.AvgWorkoutsPerWeek >= 3 {
			notes = append(notes, "Great exercise consistency! This likely contributes to better symptom management")
		}
	}
	for _, name := range agg.sortedNames() {
		stats := byName[name]
		if stats.Count >= 5 && stats.AvgSeverity >= 2.5 {
			notes = append(notes, fmt.Sprintf("\"%s\" appears frequently with high severity (avg %.1f/3) - consider discussing with healthcare provider", name, stats.AvgSeverity))
		}
		switch stats.Trend {
		case models.TrendDecreasing:
			notes = append(notes, fmt.Sprintf("Good news: \"%s\" symptoms are trending downward", name))
		case models.TrendIncreasing:
			notes = append(notes, fmt.Sprintf("\"%s\" symptoms are increasing - let's discuss strategies to manage this", name))
		}
	}

	return &models.TrackerSummary{
		Symptoms:  symptoms,
		Nutrition: nutritionSummary,
		Fitness:   fitnessSummary,
		Patterns:  models.PatternSummary{Correlations: correlations, Insights: notes},
		Ranked:    buildInsights(logs, nutrition, fitness, days, now),
	}
}

// workoutsPerWeek averages workout count over the span between the
// oldest and newest entries, with a one-day floor.
func workoutsPerWeek(fitness []models.FitnessEntry) float64 {
	if len(fitness) == 0 {
		return 0
	}

	oldest, newest := fitness[0].PerformedAt, fitness[0].PerformedAt
	for _, f := range fitness[1:] {
		if f.PerformedAt.Before(oldest) {
			oldest = f.PerformedAt
		}
		if f.PerformedAt.After(newest) {
			newest = f.PerformedAt
		}
	}

	daysDiff := math.Max(1, newest.Sub(oldest).Hours()/24)
	weeks := daysDiff / 7
	if weeks == 0 {
		return float64(len(fitness))
	}
	return round1(float64(len(fitness)) / weeks)
}

// FormatSummary renders the summary as the text block handed to the
// narrative renderer.
func FormatSummary(summary *models.TrackerSummary, days int) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("=== USER TRACKER DATA (Last %d days) ===", days))

	parts = append(parts, "\nSYMPTOMS:")
	if summary.Symptoms.Total == 0 {
		parts = append(parts, "- No symptoms logged")
	} else {
		parts = append(parts, fmt.Sprintf("- Total logged: %d", summary.Symptoms.Total))
		parts = append(parts, fmt.Sprintf("- Average severity: %.1f/3", summary.Symptoms.AvgSeverity))
		parts = append(parts, fmt.Sprintf("- Overall trend: %s", summary.Symptoms.Trend))
		if len(summary.Symptoms.ByName) > 0 {
			parts = append(parts, "- By symptom:")
			for _, name := range sortedKeys(summary.Symptoms.ByName) {
				stats := summary.Symptoms.ByName[name]
				parts = append(parts, fmt.Sprintf("  - %s: %d occurrences, avg severity %.1f/3, trend: %s",
					name, stats.Count, stats.AvgSeverity, stats.Trend))
			}
		}
	}

	parts = append(parts, "\nNUTRITION:")
	if summary.Nutrition.Total == 0 {
		parts = append(parts, "- No nutrition entries logged")
	} else {
		parts = append(parts, fmt.Sprintf("- Total entries: %d", summary.Nutrition.Total))
		if summary.Nutrition.AvgCalories > 0 {
			parts = append(parts, fmt.Sprintf("- Average calories per entry: %d", summary.Nutrition.AvgCalories))
		}
		if len(summary.Nutrition.ByMealType) > 0 {
			parts = append(parts, "- By meal type:")
			for _, mealType := range sortedKeys(summary.Nutrition.ByMealType) {
				parts = append(parts, fmt.Sprintf("  - %s: %d entries", mealType, summary.Nutrition.ByMealType[mealType]))
			}
		}
	}

	parts = append(parts, "\nFITNESS:")
	if summary.Fitness.Total == 0 {
		parts = append(parts, "- No workouts logged")
	} else {
		parts = append(parts, fmt.Sprintf("- Total workouts: %d", summary.Fitness.Total))
		parts = append(parts, fmt.Sprintf("- Average workouts per week: %.1f", summary.Fitness.AvgWorkoutsPerWeek))
		if summary.Fitness.AvgDuration > 0 {
			parts = append(parts, fmt.Sprintf("- Average duration: %d minutes", summary.Fitness.AvgDuration))
		}
		if len(summary.Fitness.ByType) > 0 {
			parts = append(parts, "- By exercise type:")
			for _, exerciseType := range sortedKeys(summary.Fitness.ByType) {
				parts = append(parts, fmt.Sprintf("  - %s: %d workouts", exerciseType, summary.Fitness.ByType[exerciseType]))
			}
		}
	}

	if len(summary.Patterns.Correlations) > 0 || len(summary.Patterns.Insights) > 0 {
		parts = append(parts, "\nPATTERNS & INSIGHTS:")
		for _, corr := range summary.Patterns.Correlations {
			parts = append(parts, "- "+corr)
		}
		for _, note := range summary.Patterns.Insights {
			parts = append(parts, "- "+note)
		}
	}

	parts = append(parts, "\n=== END TRACKER DATA ===\n")
	return strings.Join(parts, "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func recentLogs(logs []models.SymptomLog) []models.SymptomLog {
	out := make([]models.SymptomLog, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoggedAt.After(out[j].LoggedAt)
	})
	if len(out) > recentEntryLimit {
		out = out[:recentEntryLimit]
	}
	return out
}

func recentNutrition(entries []models.NutritionEntry) []models.NutritionEntry {
	out := make([]models.NutritionEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConsumedAt.After(out[j].ConsumedAt)
	})
	if len(out) > recentEntryLimit {
		out = out[:recentEntryLimit]
	}
	return out
}

func recentFitness(entries []models.FitnessEntry) []models.FitnessEntry {
	out := make([]models.FitnessEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformedAt.After(out[j].PerformedAt)
	})
	if len(out) > recentEntryLimit {
		out = out[:recentEntryLimit]
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
