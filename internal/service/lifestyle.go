package service

import (
	"context"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
)

type nutritionService struct {
	repo repository.NutritionRepository
	now  func() time.Time
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(repo repository.NutritionRepository) NutritionService {
	return &nutritionService{repo: repo, now: time.Now}
}

func (s *nutritionService) List(ctx context.Context, userID string, days int) ([]models.NutritionEntry, error) {
	now := s.now()
	return s.repo.GetByUserIDAndDateRange(ctx, userID, now.AddDate(0, 0, -days), now)
}

func (s *nutritionService) Create(ctx context.Context, userID string, req *models.CreateNutritionRequest) (*models.NutritionEntry, error) {
	consumedAt := s.now()
	if req.ConsumedAt != nil {
		consumedAt = *req.ConsumedAt
	}

	entry := &models.NutritionEntry{
		UserID:     userID,
		FoodItem:   req.FoodItem,
		MealType:   req.MealType,
		Calories:   req.Calories,
		Notes:      req.Notes,
		ConsumedAt: consumedAt,
	}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition entry: %w", err)
	}
	return created, nil
}

func (s *nutritionService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

type fitnessService struct {
	repo repository.FitnessRepository
	now  func() time.Time
}

// NewFitnessService creates a new fitness service
func NewFitnessService(repo repository.FitnessRepository) FitnessService {
	return &fitnessService{repo: repo, now: time.Now}
}

func (s *fitnessService) List(ctx context.Context, userID string, days int) ([]models.FitnessEntry, error) {
	now := s.now()
	return s.repo.GetByUserIDAndDateRange(ctx, userID, now.AddDate(0, 0, -days), now)
}

func (s *fitnessService) Create(ctx context.Context, userID string, req *models.CreateFitnessRequest) (*models.FitnessEntry, error) {
	performedAt := s.now()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	entry := &models.FitnessEntry{
		UserID:          userID,
		ExerciseName:    req.ExerciseName,
		ExerciseType:    req.ExerciseType,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		Intensity:       req.Intensity,
		Notes:           req.Notes,
		PerformedAt:     performedAt,
	}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness entry: %w", err)
	}
	return created, nil
}

func (s *fitnessService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
