package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

type moodRepository struct {
	client *supabase.Client
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(client *supabase.Client) MoodRepository {
	return &moodRepository{client: client}
}

func (r *moodRepository) Upsert(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	data := map[string]interface{}{
		"user_id": entry.UserID,
		"date":    entry.Date,
		"mood":    entry.Mood,
	}

	body, err := r.client.Upsert("daily_moods", data, "user_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert mood: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no mood entry returned")
	}
	return &entries[0], nil
}

func (r *moodRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lte.%s)", start.Format("2006-01-02"), end.Format("2006-01-02")),
		"order":   "date.desc",
	}

	body, err := r.client.Query("daily_moods", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get moods: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return entries, nil
}
