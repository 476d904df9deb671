package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/willowhealth/willow-api/internal/cache"
	"github.com/willowhealth/willow-api/internal/config"
	"github.com/willowhealth/willow-api/internal/handlers"
	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/internal/middleware"
	"github.com/willowhealth/willow-api/internal/models"
	"github.com/willowhealth/willow-api/internal/repository"
	"github.com/willowhealth/willow-api/internal/service"
	"github.com/willowhealth/willow-api/pkg/openai"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logCfg := logger.DefaultConfig()
	if cfg.Server.Env != "production" {
		logCfg.Format = "text"
		logCfg.Level = logger.LevelDebug
	}
	log := logger.NewSlogLogger(logCfg)
	logger.SetDefault(log)

	log.Info("starting willow API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	symptomRepo := repository.NewSymptomRepository(supabaseClient)
	logRepo := repository.NewSymptomLogRepository(supabaseClient)
	moodRepo := repository.NewMoodRepository(supabaseClient)
	nutritionRepo := repository.NewNutritionRepository(supabaseClient)
	fitnessRepo := repository.NewFitnessRepository(supabaseClient)
	profileRepo := repository.NewProfileRepository(supabaseClient)

	// Narrative renderer. Without an API key insights still work via
	// the deterministic fallback narrative.
	var renderer service.NarrativeRenderer
	if cfg.OpenAI.APIKey != "" {
		renderer = service.NewOpenAIRenderer(openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model))
	} else {
		log.Warn("no chat API key configured, narrative insights run in fallback mode")
		renderer = service.NewStaticRenderer()
	}

	// Insight responses are cached per user and invalidated on log writes
	responseCache := cache.New[models.InsightsResponse](cfg.Insights.CacheTTL)

	// Initialize services
	symptomService := service.NewSymptomService(symptomRepo, log)
	logService := service.NewSymptomLogService(logRepo, responseCache)
	moodService := service.NewMoodService(moodRepo)
	nutritionService := service.NewNutritionService(nutritionRepo)
	fitnessService := service.NewFitnessService(fitnessRepo)
	insightService := service.NewInsightService(logRepo, moodRepo, nutritionRepo, fitnessRepo, profileRepo, renderer, responseCache, log)
	trackerService := service.NewTrackerService(logRepo, nutritionRepo, fitnessRepo, log)

	// Initialize handlers
	symptomHandler := handlers.NewSymptomHandler(symptomService)
	logHandler := handlers.NewSymptomLogHandler(logService)
	moodHandler := handlers.NewMoodHandler(moodService)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService)
	fitnessHandler := handlers.NewFitnessHandler(fitnessService)
	insightsHandler := handlers.NewInsightsHandler(insightService)
	trackerHandler := handlers.NewTrackerHandler(trackerService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		protected.Use(middleware.Idempotency())
		{
			// Insight routes
			protected.GET("/insights", middleware.RateLimitInsights(), insightsHandler.GetInsights)
			protected.GET("/insights/weekly", insightsHandler.GetWeeklyInsights)
			protected.GET("/insights/week-comparison", insightsHandler.GetWeekComparison)

			// Tracker summary
			protected.GET("/tracker/summary", trackerHandler.GetSummary)

			// Symptom catalog routes
			protected.GET("/symptoms", symptomHandler.ListSymptoms)
			protected.POST("/symptoms", symptomHandler.CreateSymptom)
			protected.DELETE("/symptoms/:id", symptomHandler.DeleteSymptom)

			// Symptom log routes
			protected.GET("/symptom-logs", logHandler.ListLogs)
			protected.POST("/symptom-logs", logHandler.CreateLog)
			protected.PUT("/symptom-logs/:id", logHandler.UpdateLog)
			protected.DELETE("/symptom-logs/:id", logHandler.DeleteLog)

			// Daily mood routes
			protected.GET("/mood", moodHandler.ListMoods)
			protected.PUT("/mood", moodHandler.UpsertMood)

			// Lifestyle routes
			protected.GET("/nutrition", nutritionHandler.ListEntries)
			protected.POST("/nutrition", nutritionHandler.CreateEntry)
			protected.DELETE("/nutrition/:id", nutritionHandler.DeleteEntry)

			protected.GET("/fitness", fitnessHandler.ListEntries)
			protected.POST("/fitness", fitnessHandler.CreateEntry)
			protected.DELETE("/fitness/:id", fitnessHandler.DeleteEntry)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
