package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/willowhealth/willow-api/internal/cache"
	"github.com/willowhealth/willow-api/internal/models"
)

// mockSymptomLogRepository is an in-memory SymptomLogRepository for testing
type mockSymptomLogRepository struct {
	logs   map[string]*models.SymptomLog
	nextID int
	// rangeErr forces GetByUserIDAndDateRange to fail
	rangeErr error
}

func newMockSymptomLogRepository() *mockSymptomLogRepository {
	return &mockSymptomLogRepository{logs: make(map[string]*models.SymptomLog)}
}

func (m *mockSymptomLogRepository) Create(ctx context.Context, log *models.SymptomLog) (*models.SymptomLog, error) {
	m.nextID++
	l := *log
	l.ID = fmt.Sprintf("log-%d", m.nextID)
	l.CreatedAt = time.Now()
	m.logs[l.ID] = &l
	return &l, nil
}

func (m *mockSymptomLogRepository) GetByID(ctx context.Context, id string) (*models.SymptomLog, error) {
	if l, ok := m.logs[id]; ok {
		return l, nil
	}
	return nil, errors.New("symptom log not found")
}

func (m *mockSymptomLogRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]models.SymptomLog, error) {
	var out []models.SymptomLog
	for _, l := range m.logs {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockSymptomLogRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.SymptomLog, error) {
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}
	var out []models.SymptomLog
	for _, l := range m.logs {
		if l.UserID == userID && !l.LoggedAt.Before(start) && !l.LoggedAt.After(end) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockSymptomLogRepository) Update(ctx context.Context, id string, patch *models.SymptomLog) (*models.SymptomLog, error) {
	existing, ok := m.logs[id]
	if !ok {
		return nil, errors.New("symptom log not found")
	}
	if patch.Severity != 0 {
		existing.Severity = patch.Severity
	}
	if !patch.LoggedAt.IsZero() {
		existing.LoggedAt = patch.LoggedAt
	}
	if patch.Triggers != nil {
		existing.Triggers = patch.Triggers
	}
	if patch.Notes != nil {
		existing.Notes = patch.Notes
	}
	if patch.TimeOfDay != nil {
		existing.TimeOfDay = patch.TimeOfDay
	}
	return existing, nil
}

func (m *mockSymptomLogRepository) Delete(ctx context.Context, id string) error {
	delete(m.logs, id)
	return nil
}

func newLogServiceForTest(repo *mockSymptomLogRepository) (SymptomLogService, *cache.Cache[models.InsightsResponse]) {
	responseCache := cache.New[models.InsightsResponse](time.Hour)
	return NewSymptomLogService(repo, responseCache), responseCache
}

func TestCreateLog_RejectsInvalidSeverity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLogServiceForTest(newMockSymptomLogRepository())

	for _, severity := range []models.Severity{0, 4, -1} {
		_, err := svc.Create(ctx, "user-1", &models.LogSymptomRequest{
			SymptomID: "sym-1",
			Severity:  severity,
		})
		if !errors.Is(err, ErrInvalidSeverity) {
			t.Errorf("severity %d: expected ErrInvalidSeverity, got %v", severity, err)
		}
	}
}

func TestCreateLog_DerivesBucketAndDefaultsTime(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, _ := newLogServiceForTest(repo)

	at := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	created, err := svc.Create(ctx, "user-1", &models.LogSymptomRequest{
		SymptomID: "sym-1",
		Severity:  models.SeverityModerate,
		LoggedAt:  &at,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.TimeOfDay == nil || *created.TimeOfDay != models.TimeOfDayNight {
		t.Errorf("expected derived night bucket, got %v", created.TimeOfDay)
	}
	if !created.LoggedAt.Equal(at) {
		t.Errorf("backdated timestamp not preserved: %v", created.LoggedAt)
	}

	// Omitted timestamp defaults to now.
	before := time.Now()
	defaulted, err := svc.Create(ctx, "user-1", &models.LogSymptomRequest{
		SymptomID: "sym-1",
		Severity:  models.SeverityMild,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if defaulted.LoggedAt.Before(before) || defaulted.LoggedAt.After(time.Now()) {
		t.Errorf("expected LoggedAt to default to now, got %v", defaulted.LoggedAt)
	}
}

func TestCreateLog_DedupesTriggers(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, _ := newLogServiceForTest(repo)

	created, err := svc.Create(ctx, "user-1", &models.LogSymptomRequest{
		SymptomID: "sym-1",
		Severity:  models.SeverityMild,
		Triggers:  []string{"Stress", "", "Coffee", "Stress", "Coffee"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	want := []string{"Stress", "Coffee"}
	if len(created.Triggers) != len(want) {
		t.Fatalf("expected %v, got %v", want, created.Triggers)
	}
	for i, trigger := range want {
		if created.Triggers[i] != trigger {
			t.Errorf("triggers[%d] = %q, want %q (first-occurrence order)", i, created.Triggers[i], trigger)
		}
	}
}

func TestCreateLog_InvalidatesInsightCache(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, responseCache := newLogServiceForTest(repo)

	responseCache.Set("user-1", models.InsightsResponse{Cached: false})
	responseCache.Set("user-2", models.InsightsResponse{Cached: false})

	_, err := svc.Create(ctx, "user-1", &models.LogSymptomRequest{
		SymptomID: "sym-1",
		Severity:  models.SeverityMild,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, ok := responseCache.Get("user-1"); ok {
		t.Error("expected user-1's cached insights invalidated after write")
	}
	if _, ok := responseCache.Get("user-2"); !ok {
		t.Error("other users' cached insights must survive")
	}
}

func TestUpdateLog_OwnershipAndRederivation(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, _ := newLogServiceForTest(repo)

	morning := models.TimeOfDayMorning
	created, _ := repo.Create(ctx, &models.SymptomLog{
		UserID:    "user-1",
		SymptomID: "sym-1",
		Severity:  models.SeverityMild,
		LoggedAt:  time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC),
		TimeOfDay: &morning,
	})

	if _, err := svc.Update(ctx, "user-2", created.ID, &models.UpdateSymptomLogRequest{}); !errors.Is(err, ErrNotOwned) {
		t.Errorf("expected ErrNotOwned for foreign log, got %v", err)
	}

	badSeverity := models.Severity(9)
	if _, err := svc.Update(ctx, "user-1", created.ID, &models.UpdateSymptomLogRequest{Severity: &badSeverity}); !errors.Is(err, ErrInvalidSeverity) {
		t.Errorf("expected ErrInvalidSeverity, got %v", err)
	}

	// Moving the occurrence time re-derives the bucket.
	evening := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, "user-1", created.ID, &models.UpdateSymptomLogRequest{LoggedAt: &evening})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.TimeOfDay == nil || *updated.TimeOfDay != models.TimeOfDayEvening {
		t.Errorf("expected re-derived evening bucket, got %v", updated.TimeOfDay)
	}
}

func TestUpdateLog_NilTriggersLeaveExisting(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, _ := newLogServiceForTest(repo)

	created, _ := repo.Create(ctx, &models.SymptomLog{
		UserID:   "user-1",
		Severity: models.SeverityMild,
		Triggers: []string{"Stress"},
		LoggedAt: time.Now(),
	})

	sev := models.SeverityModerate
	updated, err := svc.Update(ctx, "user-1", created.ID, &models.UpdateSymptomLogRequest{Severity: &sev})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(updated.Triggers) != 1 || updated.Triggers[0] != "Stress" {
		t.Errorf("nil triggers in request must not clear stored triggers, got %v", updated.Triggers)
	}

	// An explicit empty slice clears them.
	cleared, err := svc.Update(ctx, "user-1", created.ID, &models.UpdateSymptomLogRequest{Triggers: []string{}})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(cleared.Triggers) != 0 {
		t.Errorf("empty triggers in request must clear stored triggers, got %v", cleared.Triggers)
	}
}

func TestDeleteLog_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, responseCache := newLogServiceForTest(repo)

	created, _ := repo.Create(ctx, &models.SymptomLog{
		UserID:   "user-1",
		Severity: models.SeverityMild,
		LoggedAt: time.Now(),
	})
	responseCache.Set("user-1", models.InsightsResponse{})

	if err := svc.Delete(ctx, "user-2", created.ID); !errors.Is(err, ErrNotOwned) {
		t.Errorf("expected ErrNotOwned, got %v", err)
	}
	if err := svc.Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, ok := responseCache.Get("user-1"); ok {
		t.Error("expected cached insights invalidated after delete")
	}
}

func TestListLogs_BackfillsBucket(t *testing.T) {
	ctx := context.Background()
	repo := newMockSymptomLogRepository()
	svc, _ := newLogServiceForTest(repo)

	// Stored without a bucket, as legacy rows were.
	repo.Create(ctx, &models.SymptomLog{
		UserID:   "user-1",
		Severity: models.SeverityMild,
		LoggedAt: time.Now().Add(-2 * time.Hour),
	})

	logs, err := svc.List(ctx, "user-1", 7)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].TimeOfDay == nil || *logs[0].TimeOfDay == "" {
		t.Error("expected bucket backfilled on read")
	}
}
