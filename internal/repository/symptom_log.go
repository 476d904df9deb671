package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

type symptomLogRepository struct {
	client *supabase.Client
}

// NewSymptomLogRepository creates a new symptom log repository
func NewSymptomLogRepository(client *supabase.Client) SymptomLogRepository {
	return &symptomLogRepository{client: client}
}

func (r *symptomLogRepository) Create(ctx context.Context, log *models.SymptomLog) (*models.SymptomLog, error) {
	data := map[string]interface{}{
		"user_id":    log.UserID,
		"symptom_id": log.SymptomID,
		"severity":   log.Severity,
		"logged_at":  log.LoggedAt.Format(time.RFC3339),
	}

	if len(log.Triggers) > 0 {
		data["triggers"] = log.Triggers
	} else {
		data["triggers"] = []string{}
	}
	if log.Notes != nil {
		data["notes"] = *log.Notes
	}
	if log.TimeOfDay != nil {
		data["time_of_day"] = *log.TimeOfDay
	}

	body, err := r.client.Insert("symptom_logs", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create symptom log: %w", err)
	}

	var logs []models.SymptomLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("no symptom log returned")
	}
	return &logs[0], nil
}

func (r *symptomLogRepository) GetByID(ctx context.Context, id string) (*models.SymptomLog, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*,symptoms(name,icon)",
	}

	body, err := r.client.Query("symptom_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptom log: %w", err)
	}

	var logs []models.SymptomLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("symptom log not found")
	}
	return &logs[0], nil
}

func (r *symptomLogRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.SymptomLog, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*,symptoms(name,icon)",
		"order":   "logged_at.desc",
		"limit":   limit,
		"offset":  offset,
	}

	body, err := r.client.Query("symptom_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptom logs: %w", err)
	}

	var logs []models.SymptomLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return logs, nil
}

func (r *symptomLogRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.SymptomLog, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(logged_at.gte.%s,logged_at.lte.%s)", start.Format(time.RFC3339), end.Format(time.RFC3339)),
		"select":  "*,symptoms(name,icon)",
		"order":   "logged_at.desc",
	}

	body, err := r.client.Query("symptom_logs", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptom logs: %w", err)
	}

	var logs []models.SymptomLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return logs, nil
}

func (r *symptomLogRepository) Update(ctx context.Context, id string, log *models.SymptomLog) (*models.SymptomLog, error) {
	data := make(map[string]interface{})

	if log.Severity != 0 {
		data["severity"] = log.Severity
	}
	if !log.LoggedAt.IsZero() {
		data["logged_at"] = log.LoggedAt.Format(time.RFC3339)
	}
	// nil means "don't update", empty slice means "clear triggers"
	if log.Triggers != nil {
		data["triggers"] = log.Triggers
	}
	if log.Notes != nil {
		data["notes"] = *log.Notes
	}
	if log.TimeOfDay != nil {
		data["time_of_day"] = *log.TimeOfDay
	}

	body, err := r.client.Update("symptom_logs", id, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update symptom log: %w", err)
	}

	var logs []models.SymptomLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("symptom log not found")
	}
	return &logs[0], nil
}

func (r *symptomLogRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("symptom_logs", id); err != nil {
		return fmt.Errorf("failed to delete symptom log: %w", err)
	}
	return nil
}
