package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willowhealth/willow-api/internal/cache"
	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
)

const (
	// narrativeWindowDays is the lookback for the prompt's log and mood
	// sections.
	narrativeWindowDays = 7

	// analysisWindowDays is the lookback for the ranked insight
	// analyzers and the tracker block.
	analysisWindowDays = 30

	// comparisonWindowDays covers this week plus last week.
	comparisonWindowDays = 14
)

type insightService struct {
	logRepo       repository.SymptomLogRepository
	moodRepo      repository.MoodRepository
	nutritionRepo repository.NutritionRepository
	fitnessRepo   repository.FitnessRepository
	profileRepo   repository.ProfileRepository
	renderer      NarrativeRenderer
	responseCache *cache.Cache[models.InsightsResponse]
	log           logger.Logger
	now           func() time.Time
}

// NewInsightService creates a new insight service
func NewInsightService(
	logRepo repository.SymptomLogRepository,
	moodRepo repository.MoodRepository,
	nutritionRepo repository.NutritionRepository,
	fitnessRepo repository.FitnessRepository,
	profileRepo repository.ProfileRepository,
	renderer NarrativeRenderer,
	responseCache *cache.Cache[models.InsightsResponse],
	log logger.Logger,
) InsightService {
	return &insightService{
		logRepo:       logRepo,
		moodRepo:      moodRepo,
		nutritionRepo: nutritionRepo,
		fitnessRepo:   fitnessRepo,
		profileRepo:   profileRepo,
		renderer:      renderer,
		responseCache: responseCache,
		log:           log,
		now:           time.Now,
	}
}

// GenerateInsights runs the full pipeline: cached response if fresh,
// otherwise concurrent fetch, analysis, narrative render, cache, return.
func (s *insightService) GenerateInsights(ctx context.Context, userID string, forceRefresh bool) (*models.InsightsResponse, error) {
	if !forceRefresh {
		if cached, ok := s.responseCache.Get(userID); ok {
			cached.Cached = true
			return &cached, nil
		}
	}

	now := s.now()
	snapshot := s.fetchSnapshot(ctx, userID, now)

	summary := summarizeTracker(snapshot.logs, snapshot.nutrition, snapshot.fitness, analysisWindowDays, now)

	recentLogs := windowLogs(snapshot.logs, narrativeWindowDays, now)
	userPrompt := buildNarrativePrompt(snapshot.profile, recentLogs, snapshot.moods, FormatSummary(summary, analysisWindowDays))

	raw, err := s.renderer.Render(ctx, narrativeSystemPrompt, userPrompt)
	if err != nil {
		// Renderer failures degrade to the synthesized fallback rather
		// than surfacing an error to the user.
		s.log.WithContext(ctx).Warn("narrative render failed, using fallback", logger.Err(err))
		raw = ""
	}
	narrative := parseNarrative(raw)

	response := models.InsightsResponse{
		Narrative:  narrative,
		Insights:   summary.Ranked,
		Cached:     false,
		ComputedAt: now,
	}
	s.responseCache.Set(userID, response)
	return &response, nil
}

// CompareWeeks computes the week-over-week comparison from a 14-day
// window.
func (s *insightService) CompareWeeks(ctx context.Context, userID string) (*models.WeekComparison, error) {
	now := s.now()
	start := now.AddDate(0, 0, -comparisonWindowDays)

	logs, err := s.logRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		s.log.WithContext(ctx).Warn("symptom log fetch failed, comparing empty window", logger.Err(err))
		logs = nil
	}
	moods, err := s.moodRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		s.log.WithContext(ctx).Warn("mood fetch failed, comparing without good days", logger.Err(err))
		moods = nil
	}

	return compareWeeks(logs, moods, now), nil
}

// WeeklyInsights returns the template-generated list for the current
// week.
func (s *insightService) WeeklyInsights(ctx context.Context, userID string) ([]models.WeeklyInsight, error) {
	now := s.now()
	start := now.AddDate(0, 0, -comparisonWindowDays)

	logs, err := s.logRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		s.log.WithContext(ctx).Warn("symptom log fetch failed, generating from empty window", logger.Err(err))
		logs = nil
	}
	moods, err := s.moodRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		s.log.WithContext(ctx).Warn("mood fetch failed, generating without good days", logger.Err(err))
		moods = nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisWeekStart := today.AddDate(0, 0, -6)

	var currentWeek, previousWeek []models.SymptomLog
	for _, log := range logs {
		day := time.Date(log.LoggedAt.Year(), log.LoggedAt.Month(), log.LoggedAt.Day(), 0, 0, 0, 0, log.LoggedAt.Location())
		if !day.Before(thisWeekStart) {
			currentWeek = append(currentWeek, log)
		} else {
			previousWeek = append(previousWeek, log)
		}
	}

	return weeklyInsights(currentWeek, previousWeek, moods, now), nil
}

// snapshot is one analysis invocation's freshly fetched, immutable
// input set.
type snapshot struct {
	logs      []models.SymptomLog
	moods     []models.MoodEntry
	nutrition []models.NutritionEntry
	fitness   []models.FitnessEntry
	profile   *models.UserProfile
}

// fetchSnapshot issues the independent reads concurrently. Every fetch
// failure degrades to an empty collection; the profile fetch failing
// only thins the narrative.
func (s *insightService) fetchSnapshot(ctx context.Context, userID string, now time.Time) *snapshot {
	start := now.AddDate(0, 0, -analysisWindowDays)
	moodStart := now.AddDate(0, 0, -narrativeWindowDays)
	snap := &snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logs, err := s.logRepo.GetByUserIDAndDateRange(gctx, userID, start, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("symptom log fetch failed, proceeding with empty window", logger.Err(err))
			return nil
		}
		snap.logs = logs
		return nil
	})
	g.Go(func() error {
		moods, err := s.moodRepo.GetByUserIDAndDateRange(gctx, userID, moodStart, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("mood fetch failed, proceeding with empty window", logger.Err(err))
			return nil
		}
		snap.moods = moods
		return nil
	})
	g.Go(func() error {
		nutrition, err := s.nutritionRepo.GetByUserIDAndDateRange(gctx, userID, start, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("nutrition fetch failed, proceeding with empty window", logger.Err(err))
			return nil
		}
		snap.nutrition = nutrition
		return nil
	})
	g.Go(func() error {
		fitness, err := s.fitnessRepo.GetByUserIDAndDateRange(gctx, userID, start, now)
		if err != nil {
			s.log.WithContext(ctx).Warn("fitness fetch failed, proceeding with empty window", logger.Err(err))
			return nil
		}
		snap.fitness = fitness
		return nil
	})
	g.Go(func() error {
		profile, err := s.profileRepo.GetByUserID(gctx, userID)
		if err != nil {
			s.log.WithContext(ctx).Warn("profile fetch failed, narrative will omit profile fields", logger.Err(err))
			return nil
		}
		snap.profile = profile
		return nil
	})
	_ = g.Wait()

	return snap
}
