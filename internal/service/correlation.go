package service

import (
	"fmt"
	"math"

	"github.com/willowhealth/willow-api/internal/models"
)

const (
	// Absolute mean-severity margins on the 1-3 scale required before a
	// correlation is reported.
	workoutCorrelationMargin   = 1.0
	nutritionCorrelationMargin = 0.5
)

// workoutCorrelation compares mean symptom severity on days with a
// logged workout against days without one. No insight when either
// partition is empty: there is nothing to compare against.
func workoutCorrelation(logs []models.SymptomLog, fitness []models.FitnessEntry) *models.Insight {
	if len(logs) == 0 || len(fitness) == 0 {
		return nil
	}

	workoutDays := make(map[string]bool)
	for _, f := range fitness {
		workoutDays[dayKey(f.PerformedAt)] = true
	}

	var onDays, offDays []float64
	for _, log := range logs {
		if workoutDays[dayKey(log.LoggedAt)] {
			onDays = append(onDays, float64(log.Severity))
		} else {
			offDays = append(offDays, float64(log.Severity))
		}
	}
	if len(onDays) == 0 || len(offDays) == 0 {
		return nil
	}

	onMean := mean(onDays)
	offMean := mean(offDays)
	if offMean-onMean < workoutCorrelationMargin {
		return nil
	}

	pct := int(math.Round((offMean - onMean) / offMean * 100))
	return &models.Insight{
		Text:            fmt.Sprintf("Workout days show %d%% lower symptom severity", pct),
		Category:        models.CategoryCorrelation,
		Priority:        models.PriorityMedium,
		ChangePercent:   pct,
		ChangeDirection: models.ChangeDown,
	}
}

// nutritionCorrelation compares mean symptom severity on days with a
// logged meal against days without one, using the looser margin for
// the calorie-adjusted context.
func nutritionCorrelation(logs []models.SymptomLog, nutrition []models.NutritionEntry) *models.Insight {
	if len(logs) == 0 || len(nutrition) == 0 {
		return nil
	}

	loggedDays := make(map[string]bool)
	for _, n := range nutrition {
		loggedDays[dayKey(n.ConsumedAt)] = true
	}

	var onDays, offDays []float64
	for _, log := range logs {
		if loggedDays[dayKey(log.LoggedAt)] {
			onDays = append(onDays, float64(log.Severity))
		} else {
			offDays = append(offDays, float64(log.Severity))
		}
	}
	if len(onDays) == 0 || len(offDays) == 0 {
		return nil
	}

	onMean := mean(onDays)
	offMean := mean(offDays)
	if offMean-onMean < nutritionCorrelationMargin {
		return nil
	}

	pct := int(math.Round((offMean - onMean) / offMean * 100))
	return &models.Insight{
		Text:            fmt.Sprintf("Days with logged meals show %d%% lower symptom severity", pct),
		Category:        models.CategoryCorrelation,
		Priority:        models.PriorityMedium,
		ChangePercent:   pct,
		ChangeDirection: models.ChangeDown,
	}
}
