package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
)

type symptomService struct {
	repo repository.SymptomRepository
	log  logger.Logger
}

// NewSymptomService creates a new symptom service
func NewSymptomService(repo repository.SymptomRepository, log logger.Logger) SymptomService {
	return &symptomService{repo: repo, log: log}
}

// List returns the user's symptom definitions, seeding the default
// catalog the first time a user shows up with none.
func (s *symptomService) List(ctx context.Context, userID string) ([]models.Symptom, error) {
	symptoms, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptoms: %w", err)
	}
	if len(symptoms) > 0 {
		return symptoms, nil
	}

	seeds := make([]models.Symptom, 0, len(models.DefaultSymptoms))
	for _, d := range models.DefaultSymptoms {
		seeds = append(seeds, models.Symptom{
			UserID:    userID,
			Name:      d.Name,
			Icon:      d.Icon,
			IsDefault: true,
		})
	}

	created, err := s.repo.CreateBatch(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("failed to seed default symptoms: %w", err)
	}
	s.log.WithContext(ctx).Info("seeded default symptom catalog", logger.Int("count", len(created)))
	return created, nil
}

// Create adds a custom symptom definition. Names are unique per user,
// case-insensitively, across defaults and earlier custom entries.
func (s *symptomService) Create(ctx context.Context, userID string, req *models.CreateSymptomRequest) (*models.Symptom, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing symptoms: %w", err)
	}
	for _, e := range existing {
		if strings.EqualFold(e.Name, req.Name) {
			return nil, ErrDuplicateSymptom
		}
	}

	symptom := &models.Symptom{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
	}
	created, err := s.repo.Create(ctx, symptom)
	if err != nil {
		return nil, fmt.Errorf("failed to create symptom: %w", err)
	}
	return created, nil
}

func (s *symptomService) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotOwned
	}
	return s.repo.Delete(ctx, id)
}
