package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

type nutritionRepository struct {
	client *supabase.Client
}

// NewNutritionRepository creates a new nutrition repository
func NewNutritionRepository(client *supabase.Client) NutritionRepository {
	return &nutritionRepository{client: client}
}

func (r *nutritionRepository) Create(ctx context.Context, entry *models.NutritionEntry) (*models.NutritionEntry, error) {
	data := map[string]interface{}{
		"user_id":     entry.UserID,
		"food_item":   entry.FoodItem,
		"meal_type":   entry.MealType,
		"consumed_at": entry.ConsumedAt.Format(time.RFC3339),
	}

	if entry.Calories != nil {
		data["calories"] = *entry.Calories
	}
	if entry.Notes != nil {
		data["notes"] = *entry.Notes
	}

	body, err := r.client.Insert("nutrition_entries", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition entry: %w", err)
	}

	var entries []models.NutritionEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no nutrition entry returned")
	}
	return &entries[0], nil
}

func (r *nutritionRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.NutritionEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(consumed_at.gte.%s,consumed_at.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"order":   "consumed_at.desc",
	}

	body, err := r.client.Query("nutrition_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get nutrition entries: %w", err)
	}

	var entries []models.NutritionEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return entries, nil
}

func (r *nutritionRepository) Delete(ctx context.Context, userID, id string) error {
	params := map[string]interface{}{
		"id":      fmt.Sprintf("eq.%s", id),
		"user_id": fmt.Sprintf("eq.%s", userID),
	}
	if err := r.client.DeleteWhere("nutrition_entries", params); err != nil {
		return fmt.Errorf("failed to delete nutrition entry: %w", err)
	}
	return nil
}
