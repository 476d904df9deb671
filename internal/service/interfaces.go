package service

import (
	"context"

	"github.com/willowhealth/willow-api/internal/models"
)

// SymptomService defines the interface for symptom definition operations
type SymptomService interface {
	// List returns the user's symptoms, seeding the default catalog on
	// first use.
	List(ctx context.Context, userID string) ([]models.Symptom, error)
	Create(ctx context.Context, userID string, req *models.CreateSymptomRequest) (*models.Symptom, error)
	Delete(ctx context.Context, userID, id string) error
}

// SymptomLogService defines the interface for symptom log operations
type SymptomLogService interface {
	List(ctx context.Context, userID string, days int) ([]models.SymptomLog, error)
	Create(ctx context.Context, userID string, req *models.LogSymptomRequest) (*models.SymptomLog, error)
	Update(ctx context.Context, userID, id string, req *models.UpdateSymptomLogRequest) (*models.SymptomLog, error)
	Delete(ctx context.Context, userID, id string) error
}

// MoodService defines the interface for daily mood operations
type MoodService interface {
	List(ctx context.Context, userID string, days int) ([]models.MoodEntry, error)
	Upsert(ctx context.Context, userID string, req *models.UpsertMoodRequest) (*models.MoodEntry, error)
}

// NutritionService defines the interface for nutrition entry operations
type NutritionService interface {
	List(ctx context.Context, userID string, days int) ([]models.NutritionEntry, error)
	Create(ctx context.Context, userID string, req *models.CreateNutritionRequest) (*models.NutritionEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// FitnessService defines the interface for fitness entry operations
type FitnessService interface {
	List(ctx context.Context, userID string, days int) ([]models.FitnessEntry, error)
	Create(ctx context.Context, userID string, req *models.CreateFitnessRequest) (*models.FitnessEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// InsightService defines the interface for the insight generation pipeline
type InsightService interface {
	// GenerateInsights produces the narrative plus ranked insights for a
	// user, serving from the per-user cache unless forceRefresh is set.
	GenerateInsights(ctx context.Context, userID string, forceRefresh bool) (*models.InsightsResponse, error)
	// CompareWeeks computes the last-7-days vs preceding-7-days comparison.
	CompareWeeks(ctx context.Context, userID string) (*models.WeekComparison, error)
	// WeeklyInsights returns the template-based weekly insight list.
	WeeklyInsights(ctx context.Context, userID string) ([]models.WeeklyInsight, error)
}

// TrackerService defines the interface for the tracker summary view
type TrackerService interface {
	Summarize(ctx context.Context, userID string, days int) (*models.TrackerSummary, error)
}

// NarrativeRenderer converts a formatted data block into a written
// insight. Implementations may call an external model; tests substitute
// a deterministic stub.
type NarrativeRenderer interface {
	Render(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
