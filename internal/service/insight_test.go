package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/willowhealth/willow-api/internal/cache"
	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/models"
)

type mockMoodRepository struct {
	entries  []models.MoodEntry
	rangeErr error
}

func (m *mockMoodRepository) Upsert(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *mockMoodRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, error) {
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}
	return m.entries, nil
}

type mockNutritionRepository struct {
	entries []models.NutritionEntry
}

func (m *mockNutritionRepository) Create(ctx context.Context, entry *models.NutritionEntry) (*models.NutritionEntry, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *mockNutritionRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.NutritionEntry, error) {
	return m.entries, nil
}

func (m *mockNutritionRepository) Delete(ctx context.Context, userID, id string) error {
	return nil
}

type mockFitnessRepository struct {
	entries []models.FitnessEntry
}

func (m *mockFitnessRepository) Create(ctx context.Context, entry *models.FitnessEntry) (*models.FitnessEntry, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *mockFitnessRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.FitnessEntry, error) {
	return m.entries, nil
}

func (m *mockFitnessRepository) Delete(ctx context.Context, userID, id string) error {
	return nil
}

type mockProfileRepository struct {
	profile *models.UserProfile
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	if m.profile == nil {
		return nil, errors.New("profile not found")
	}
	return m.profile, nil
}

// stubRenderer records calls and returns a canned completion.
type stubRenderer struct {
	raw   string
	err   error
	calls int
}

func (r *stubRenderer) Render(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	r.calls++
	return r.raw, r.err
}

type insightFixture struct {
	logRepo  *mockSymptomLogRepository
	moodRepo *mockMoodRepository
	renderer *stubRenderer
	svc      *insightService
}

func newInsightFixture(renderer *stubRenderer) *insightFixture {
	logRepo := newMockSymptomLogRepository()
	moodRepo := &mockMoodRepository{}
	return &insightFixture{
		logRepo:  logRepo,
		moodRepo: moodRepo,
		renderer: renderer,
		svc: &insightService{
			logRepo:       logRepo,
			moodRepo:      moodRepo,
			nutritionRepo: &mockNutritionRepository{},
			fitnessRepo:   &mockFitnessRepository{},
			profileRepo:   &mockProfileRepository{},
			renderer:      renderer,
			responseCache: cache.New[models.InsightsResponse](time.Hour),
			log:           logger.NewSlogLogger(logger.DefaultConfig()),
			now:           func() time.Time { return weekNow },
		},
	}
}

func (f *insightFixture) seedLog(ctx context.Context, log models.SymptomLog) {
	f.logRepo.Create(ctx, &log)
}

func TestGenerateInsights_ParsesRenderedNarrative(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{raw: validNarrativeJSON})
	f.seedLog(ctx, mkLog("Hot flashes", models.SeveritySevere, weekNow.Add(-24*time.Hour), "Stress"))

	resp, err := f.svc.GenerateInsights(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}
	if resp.Cached {
		t.Error("first generation must not be served from cache")
	}
	if f.renderer.calls != 1 {
		t.Errorf("expected 1 renderer call, got %d", f.renderer.calls)
	}
	if resp.Narrative.PatternHeadline != "Sarah, your hot flashes cluster on poor-sleep days." {
		t.Errorf("unexpected headline: %q", resp.Narrative.PatternHeadline)
	}
	if !resp.ComputedAt.Equal(weekNow) {
		t.Errorf("ComputedAt = %v, want %v", resp.ComputedAt, weekNow)
	}
}

func TestGenerateInsights_ServesSecondCallFromCache(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{raw: validNarrativeJSON})

	first, err := f.svc.GenerateInsights(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}
	second, err := f.svc.GenerateInsights(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}

	if !second.Cached {
		t.Error("second call within TTL must be served from cache")
	}
	if f.renderer.calls != 1 {
		t.Errorf("cache hit must not call the renderer, got %d calls", f.renderer.calls)
	}
	if second.Narrative.PatternHeadline != first.Narrative.PatternHeadline {
		t.Error("cached response diverged from the original")
	}
}

func TestGenerateInsights_ForceRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{raw: validNarrativeJSON})

	if _, err := f.svc.GenerateInsights(ctx, "user-1", false); err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}
	resp, err := f.svc.GenerateInsights(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("GenerateInsights failed: %v", err)
	}

	if resp.Cached {
		t.Error("forced refresh must recompute")
	}
	if f.renderer.calls != 2 {
		t.Errorf("expected 2 renderer calls, got %d", f.renderer.calls)
	}
}

func TestGenerateInsights_RendererErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{err: errors.New("upstream timeout")})

	resp, err := f.svc.GenerateInsights(ctx, "user-1", false)
	if err != nil {
		t.Fatalf("renderer failure must not surface to the caller: %v", err)
	}
	if resp.Narrative.ActionSteps.Easy != "Keep tracking so Lisa can spot what helps." {
		t.Errorf("expected fallback action steps, got %q", resp.Narrative.ActionSteps.Easy)
	}
	if resp.Narrative.Trend != "stable" {
		t.Errorf("fallback trend = %q, want stable", resp.Narrative.Trend)
	}
}

func TestCompareWeeks_BothWeeksPopulated(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{})

	// Two logs last week, three this week.
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, weekNow.AddDate(0, 0, -10)))
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, weekNow.AddDate(0, 0, -9)))
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, weekNow.AddDate(0, 0, -2)))
	f.seedLog(ctx, mkLog("Headaches", models.SeverityMild, weekNow.AddDate(0, 0, -1)))
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, weekNow))

	cmp, err := f.svc.CompareWeeks(ctx, "user-1")
	if err != nil {
		t.Fatalf("CompareWeeks failed: %v", err)
	}
	if cmp.State != models.WeekStateComparison {
		t.Fatalf("state = %q, want comparison", cmp.State)
	}
	if cmp.ThisWeek.TotalLogs != 3 || cmp.LastWeek.TotalLogs != 2 {
		t.Errorf("totals = %d/%d, want 3/2", cmp.ThisWeek.TotalLogs, cmp.LastWeek.TotalLogs)
	}
	if cmp.ThisWeek.MostFrequent != "Hot flashes" {
		t.Errorf("most frequent = %q, want Hot flashes", cmp.ThisWeek.MostFrequent)
	}
	if cmp.Message == "" {
		t.Error("comparison state must produce a message")
	}
}

func TestCompareWeeks_RepoErrorDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{})
	f.logRepo.rangeErr = errors.New("database unavailable")

	cmp, err := f.svc.CompareWeeks(ctx, "user-1")
	if err != nil {
		t.Fatalf("repo failure must degrade, not surface: %v", err)
	}
	if cmp.State != models.WeekStateEmpty {
		t.Errorf("state = %q, want empty", cmp.State)
	}
}

func TestWeeklyInsights_SplitsWeeksAtBoundary(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{})

	// This week starts Monday March 9. A Sunday March 8 log belongs to
	// last week and feeds only the comparison template.
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)))
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)))
	f.seedLog(ctx, mkLog("Hot flashes", models.SeverityMild, time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)))

	insights, err := f.svc.WeeklyInsights(ctx, "user-1")
	if err != nil {
		t.Fatalf("WeeklyInsights failed: %v", err)
	}

	byType := make(map[string]models.WeeklyInsight)
	for _, ins := range insights {
		byType[ins.Type] = ins
	}
	if got := byType["frequency"].Content; got != "You logged 2 symptoms this week. Most frequent: Hot flashes (2)." {
		t.Errorf("frequency text = %q", got)
	}
	if got := byType["comparison"].Content; got != "Hot flashes: 2 this week vs. 1 last week." {
		t.Errorf("comparison text = %q", got)
	}
}

func TestWeeklyInsights_RepoErrorStillYieldsConsistency(t *testing.T) {
	ctx := context.Background()
	f := newInsightFixture(&stubRenderer{})
	f.logRepo.rangeErr = errors.New("database unavailable")
	f.moodRepo.rangeErr = errors.New("database unavailable")

	insights, err := f.svc.WeeklyInsights(ctx, "user-1")
	if err != nil {
		t.Fatalf("repo failure must degrade, not surface: %v", err)
	}
	found := false
	for _, ins := range insights {
		if ins.Type == "consistency" {
			found = true
			if ins.Content != "You tracked 0 out of 7 days this week." {
				t.Errorf("consistency text = %q", ins.Content)
			}
		}
	}
	if !found {
		t.Error("consistency insight must always be present")
	}
}
