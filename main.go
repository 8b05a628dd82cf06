package main

import (
	"log"

	api "cyclesense-backend/cmd/api"
	authdomain "cyclesense-backend/internal/auth/domain"
	authRepo "cyclesense-backend/internal/auth/repository"
	authUsecase "cyclesense-backend/internal/auth/usecase"
	cycledomain "cyclesense-backend/internal/cycle/domain"
	cycleRepo "cyclesense-backend/internal/cycle/repository"
	cycleUsecase "cyclesense-backend/internal/cycle/usecase"
	exportUsecase "cyclesense-backend/internal/export/usecase"
	forecastdomain "cyclesense-backend/internal/forecast/domain"
	forecastRepo "cyclesense-backend/internal/forecast/repository"
	forecastUsecase "cyclesense-backend/internal/forecast/usecase"
	goaldomain "cyclesense-backend/internal/goal/domain"
	goalRepo "cyclesense-backend/internal/goal/repository"
	goalUsecase "cyclesense-backend/internal/goal/usecase"
	metricdomain "cyclesense-backend/internal/metric/domain"
	metricRepo "cyclesense-backend/internal/metric/repository"
	metricUsecase "cyclesense-backend/internal/metric/usecase"
	wearabledomain "cyclesense-backend/internal/wearable/domain"
	wearableRepo "cyclesense-backend/internal/wearable/repository"
	wearableScheduler "cyclesense-backend/internal/wearable/scheduler"
	wearableUsecase "cyclesense-backend/internal/wearable/usecase"
	"cyclesense-backend/pkg/ai"
	"cyclesense-backend/pkg/config"
	"cyclesense-backend/pkg/database"
	"cyclesense-backend/pkg/ultrahuman"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Users first, every other table references them
	if err := database.Migrate(db,
		&authdomain.User{},
		&metricdomain.HealthMetric{},
		&forecastdomain.WellnessForecast{},
		&cycledomain.CycleTracking{},
		&goaldomain.HealthGoal{},
		&wearabledomain.WearableToken{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	metricRepository := metricRepo.NewGormMetricRepository(db)
	forecastRepository := forecastRepo.NewGormForecastRepository(db)
	cycleRepository := cycleRepo.NewGormCycleRepository(db)
	goalRepository := goalRepo.NewGormGoalRepository(db)
	tokenRepository := wearableRepo.NewGormTokenRepository(db)

	// Outbound clients
	aiService, err := ai.NewForecastService(ai.Config{
		Provider:        ai.ProviderType(cfg.AIProvider),
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		GeminiAPIKey:    cfg.GeminiApiKey,
		OllamaBaseURL:   cfg.OllamaBaseURL,
		OllamaModel:     cfg.OllamaModel,
		SupabaseURL:     cfg.SupabaseURL,
		SupabaseAnonKey: cfg.SupabaseAnonKey,
		Timeout:         cfg.AITimeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("[AI] forecast provider: %s", aiService.Name())

	ultrahumanClient := ultrahuman.NewClient(ultrahuman.Config{
		BaseURL:      cfg.UltrahumanBaseURL,
		ClientID:     cfg.UltrahumanClientID,
		ClientSecret: cfg.UltrahumanClientSecret,
		RedirectURI:  cfg.UltrahumanRedirectURI,
		AccessToken:  cfg.UltrahumanAccessToken,
		Timeout:      cfg.UltrahumanTimeout,
	})
	if !cfg.UltrahumanOAuthConfigured() {
		log.Printf("[Sync] ULTRAHUMAN_CLIENT_ID/SECRET not set, OAuth linking will fail")
	}

	// Initialize use cases (dependency injection)
	cycleUsecaseInstance := cycleUsecase.NewCycleUsecase(cycleRepository)
	wearableUsecaseInstance := wearableUsecase.NewWearableUsecase(tokenRepository, metricRepository, ultrahumanClient)
	usecases := api.Usecases{
		Auth:     authUsecase.NewAuthUsecase(userRepository, cfg),
		Metric:   metricUsecase.NewMetricUsecase(metricRepository, cycleUsecaseInstance),
		Forecast: forecastUsecase.NewForecastUsecase(forecastRepository, metricRepository, cycleUsecaseInstance, aiService),
		Cycle:    cycleUsecaseInstance,
		Goal:     goalUsecase.NewGoalUsecase(goalRepository),
		Wearable: wearableUsecaseInstance,
		Export:   exportUsecase.NewExportUsecase(metricRepository, cycleRepository, goalRepository),
	}

	// Background wearable sync (disabled unless ULTRAHUMAN_SYNC_INTERVAL is set)
	autoSync := wearableScheduler.NewAutoSyncScheduler(tokenRepository, wearableUsecaseInstance, cfg.UltrahumanSyncInterval)
	autoSync.Start()
	defer autoSync.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, usecases)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
