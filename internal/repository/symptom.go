package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

type symptomRepository struct {
	client *supabase.Client
}

// NewSymptomRepository creates a new symptom repository
func NewSymptomRepository(client *supabase.Client) SymptomRepository {
	return &symptomRepository{client: client}
}

func (r *symptomRepository) Create(ctx context.Context, symptom *models.Symptom) (*models.Symptom, error) {
	data := map[string]interface{}{
		"user_id":    symptom.UserID,
		"name":       symptom.Name,
		"icon":       symptom.Icon,
		"is_default": symptom.IsDefault,
	}

	body, err := r.client.Insert("symptoms", data)
	if err != nil {
		return nil, fmt.Errorf("failed to create symptom: %w", err)
	}

	var symptoms []models.Symptom
	if err := json.Unmarshal(body, &symptoms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("no symptom returned")
	}
	return &symptoms[0], nil
}

func (r *symptomRepository) CreateBatch(ctx context.Context, symptoms []models.Symptom) ([]models.Symptom, error) {
	if len(symptoms) == 0 {
		return []models.Symptom{}, nil
	}

	// PostgREST requires identical keys across objects for batch insert
	insertData := make([]map[string]interface{}, 0, len(symptoms))
	for _, s := range symptoms {
		insertData = append(insertData, map[string]interface{}{
			"user_id":    s.UserID,
			"name":       s.Name,
			"icon":       s.Icon,
			"is_default": s.IsDefault,
		})
	}

	body, err := r.client.Insert("symptoms", insertData)
	if err != nil {
		return nil, fmt.Errorf("failed to batch create symptoms: %w", err)
	}

	var created []models.Symptom
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return created, nil
}

func (r *symptomRepository) GetByID(ctx context.Context, id string) (*models.Symptom, error) {
	query := map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", id),
	}

	body, err := r.client.Query("symptoms", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptom: %w", err)
	}

	var symptoms []models.Symptom
	if err := json.Unmarshal(body, &symptoms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("symptom not found")
	}
	return &symptoms[0], nil
}

func (r *symptomRepository) GetByUserID(ctx context.Context, userID string) ([]models.Symptom, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"order":   "created_at.asc",
	}

	body, err := r.client.Query("symptoms", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get symptoms: %w", err)
	}

	var symptoms []models.Symptom
	if err := json.Unmarshal(body, &symptoms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return symptoms, nil
}

func (r *symptomRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("symptoms", id); err != nil {
		return fmt.Errorf("failed to delete symptom: %w", err)
	}
	return nil
}
