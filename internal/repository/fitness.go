package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

type fitnessRepository struct {
	client *supabase.Client
}

// NewFitnessRepository creates a new fitness repository
func NewFitnessRepository(client *supabase.Client) FitnessRepository {
	return &fitnessRepository{client: client}
}

func (r *fitnessRepository) Create(ctx context.Context, entry *models.FitnessEntry) (*models.FitnessEntry, error) {
	data := map[string]interface{}{
		"user_id":       entry.UserID,
		"exercise_name": entry.ExerciseName,
		"exercise_type": entry.ExerciseType,
		"performed_at":  entry.PerformedAt.Format(time.RFC3339),
	}

	if entry.DurationMinutes != nil {
		data["duration_minutes"] = *entry.DurationMinutes
	}
	if entry.CaloriesBurned != nil {
		data["calories_burned"] = *entry.CaloriesBurned
	}
	if entry.Intensity != nil {
		data["intensity"] = *entry.Intensity
	}
	if entry.Notes != nil {
		data["notes"] = *entry.Notes
	}

	body, err := r.client.Insert("fitness_entries", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness entry: %w", err)
	}

	var entries []models.FitnessEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no fitness entry returned")
	}
	return &entries[0], nil
}

func (r *fitnessRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.FitnessEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(performed_at.gte.%s,performed_at.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"order":   "performed_at.desc",
	}

	body, err := r.client.Query("fitness_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get fitness entries: %w", err)
	}

	var entries []models.FitnessEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return entries, nil
}

func (r *fitnessRepository) Delete(ctx context.Context, userID, id string) error {
	params := map[string]interface{}{
		"id":      fmt.Sprintf("eq.%s", id),
		"user_id": fmt.Sprintf("eq.%s", userID),
	}
	if err := r.client.DeleteWhere("fitness_entries", params); err != nil {
		return fmt.Errorf("failed to delete fitness entry: %w", err)
	}
	return nil
}
