package service

import (
	"context"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
)

type moodService struct {
	repo repository.MoodRepository
	now  func() time.Time
}

// NewMoodService creates a new mood service
func NewMoodService(repo repository.MoodRepository) MoodService {
	return &moodService{repo: repo, now: time.Now}
}

func (s *moodService) List(ctx context.Context, userID string, days int) ([]models.MoodEntry, error) {
	now := s.now()
	return s.repo.GetByUserIDAndDateRange(ctx, userID, now.AddDate(0, 0, -days), now)
}

// Upsert records the mood for a date, defaulting to today. At most one
// entry exists per (user, date).
func (s *moodService) Upsert(ctx context.Context, userID string, req *models.UpsertMoodRequest) (*models.MoodEntry, error) {
	if !req.Mood.Valid() {
		return nil, ErrInvalidMood
	}

	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	entry := &models.MoodEntry{
		UserID: userID,
		Date:   date,
		Mood:   req.Mood,
	}
	upserted, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert mood: %w", err)
	}
	return upserted, nil
}
