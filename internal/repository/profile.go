package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

type profileRepository struct {
	client *supabase.Client
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(client *supabase.Client) ProfileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
	}

	body, err := r.client.Query("user_profiles", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profiles []models.UserProfile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile not found")
	}
	return &profiles[0], nil
}
