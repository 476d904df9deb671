package repository

import (
	"context"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
)

// SymptomRepository defines the interface for symptom definition data access
type SymptomRepository interface {
	Create(ctx context.Context, symptom *models.Symptom) (*models.Symptom, error)
	CreateBatch(ctx context.Context, symptoms []models.Symptom) ([]models.Symptom, error)
	GetByID(ctx context.Context, id string) (*models.Symptom, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Symptom, error)
	Delete(ctx context.Context, id string) error
}

// SymptomLogRepository defines the interface for symptom log data access
type SymptomLogRepository interface {
	Create(ctx context.Context, log *models.SymptomLog) (*models.SymptomLog, error)
	GetByID(ctx context.Context, id string) (*models.SymptomLog, error)
	GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.SymptomLog, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.SymptomLog, error)
	Update(ctx context.Context, id string, log *models.SymptomLog) (*models.SymptomLog, error)
	Delete(ctx context.Context, id string) error
}

// MoodRepository defines the interface for daily mood data access
type MoodRepository interface {
	Upsert(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, error)
}

// NutritionRepository defines the interface for nutrition entry data access
type NutritionRepository interface {
	Create(ctx context.Context, entry *models.NutritionEntry) (*models.NutritionEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.NutritionEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// FitnessRepository defines the interface for fitness entry data access
type FitnessRepository interface {
	Create(ctx context.Context, entry *models.FitnessEntry) (*models.FitnessEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.FitnessEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// ProfileRepository defines the interface for user profile data access
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}
