package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/willowhealth/willow-api/internal/models"
)

const (
	// minLogsForTriggerAnalysis is the per-symptom occurrence floor
	// below which trigger percentages are too noisy to report.
	minLogsForTriggerAnalysis = 3

	// triggerCooccurrenceThreshold is the minimum percentage of a
	// symptom's logs a trigger must appear on.
	triggerCooccurrenceThreshold = 50.0
)

// triggerInsights flags triggers that co-occur with a symptom on at
// least half of its logs. Each qualifying (symptom, trigger) pair
// produces its own insight.
func triggerInsights(agg *aggregates) []models.Insight {
	var insights []models.Insight

	for _, name := range agg.sortedNames() {
		series := agg.ByName[name]
		total := len(series.Severities)
		if total < minLogsForTriggerAnalysis {
			continue
		}

		triggers := make([]string, 0, len(series.Triggers))
		for trigger := range series.Triggers {
			triggers = append(triggers, trigger)
		}
		sort.Strings(triggers)

		for _, trigger := range triggers {
			pct := float64(series.Triggers[trigger]) / float64(total) * 100
			if pct < triggerCooccurrenceThreshold {
				continue
			}
			insights = append(insights, models.Insight{
				Text: fmt.Sprintf("%s appears with \"%s\" %d%% of the time - this may be a trigger worth watching",
					name, trigger, int(math.Round(pct))),
				Category:    models.CategoryTrigger,
				Priority:    models.PriorityHigh,
				SymptomName: name,
				TriggerName: trigger,
			})
		}
	}

	return insights
}
