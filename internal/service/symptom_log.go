package service

import (
	"context"
	"fmt"
	"time"

	"github.com/willowhealth/willow-api/internal/cache"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
)

type symptomLogService struct {
	repo          repository.SymptomLogRepository
	responseCache *cache.Cache[models.InsightsResponse]
	now           func() time.Time
}

// NewSymptomLogService creates a new symptom log service. Writes
// invalidate the user's cached insight response so fresh logs show up
// without waiting out the TTL.
func NewSymptomLogService(repo repository.SymptomLogRepository, responseCache *cache.Cache[models.InsightsResponse]) SymptomLogService {
	return &symptomLogService{
		repo:          repo,
		responseCache: responseCache,
		now:           time.Now,
	}
}

func (s *symptomLogService) List(ctx context.Context, userID string, days int) ([]models.SymptomLog, error) {
	now := s.now()
	logs, err := s.repo.GetByUserIDAndDateRange(ctx, userID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}

	// Backfill the bucket on read for logs created before the column
	// existed.
	for i := range logs {
		if logs[i].TimeOfDay == nil || *logs[i].TimeOfDay == "" {
			bucket := TimeOfDayFor(logs[i].LoggedAt)
			logs[i].TimeOfDay = &bucket
		}
	}
	return logs, nil
}

func (s *symptomLogService) Create(ctx context.Context, userID string, req *models.LogSymptomRequest) (*models.SymptomLog, error) {
	if !req.Severity.Valid() {
		return nil, ErrInvalidSeverity
	}

	loggedAt := s.now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}
	bucket := TimeOfDayFor(loggedAt)

	log := &models.SymptomLog{
		UserID:    userID,
		SymptomID: req.SymptomID,
		Severity:  req.Severity,
		Triggers:  dedupeTriggers(req.Triggers),
		Notes:     req.Notes,
		LoggedAt:  loggedAt,
		TimeOfDay: &bucket,
	}

	created, err := s.repo.Create(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create symptom log: %w", err)
	}
	s.responseCache.Invalidate(userID)
	return created, nil
}

func (s *symptomLogService) Update(ctx context.Context, userID, id string, req *models.UpdateSymptomLogRequest) (*models.SymptomLog, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotOwned
	}

	patch := &models.SymptomLog{}
	if req.Severity != nil {
		if !req.Severity.Valid() {
			return nil, ErrInvalidSeverity
		}
		patch.Severity = *req.Severity
	}
	if req.Triggers != nil {
		patch.Triggers = dedupeTriggers(req.Triggers)
	}
	patch.Notes = req.Notes
	if req.LoggedAt != nil {
		patch.LoggedAt = *req.LoggedAt
		bucket := TimeOfDayFor(*req.LoggedAt)
		patch.TimeOfDay = &bucket
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update symptom log: %w", err)
	}
	s.responseCache.Invalidate(userID)
	return updated, nil
}

func (s *symptomLogService) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return ErrNotOwned
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.responseCache.Invalidate(userID)
	return nil
}

// dedupeTriggers removes duplicate tags while preserving the first
// occurrence order.
func dedupeTriggers(triggers []string) []string {
	if triggers == nil {
		return nil
	}
	seen := make(map[string]bool, len(triggers))
	out := make([]string, 0, len(triggers))
	for _, t := range triggers {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
