package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"cyclesense-backend/internal/forecast/domain"
	"cyclesense-backend/internal/forecast/repository"
	metricdomain "cyclesense-backend/internal/metric/domain"
	metricrepo "cyclesense-backend/internal/metric/repository"
	metricusecase "cyclesense-backend/internal/metric/usecase"
	"cyclesense-backend/pkg/ai"
	"cyclesense-backend/pkg/analytics"

	"gorm.io/datatypes"
)

type forecastUsecase struct {
	forecastRepo repository.ForecastRepository
	metricRepo   metricrepo.MetricRepository
	cycleFinder  metricusecase.CycleFinder
	aiService    ai.ForecastService
}

func NewForecastUsecase(
	forecastRepo repository.ForecastRepository,
	metricRepo metricrepo.MetricRepository,
	cycleFinder metricusecase.CycleFinder,
	aiService ai.ForecastService,
) ForecastUsecase {
	return &forecastUsecase{
		forecastRepo: forecastRepo,
		metricRepo:   metricRepo,
		cycleFinder:  cycleFinder,
		aiService:    aiService,
	}
}

func (u *forecastUsecase) Generate(ctx context.Context, userID, bearer string, now time.Time) (*domain.WellnessForecast, error) {
	metrics, err := u.metricRepo.ListByUser(userID, MetricsWindow)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, domain.ErrNoMetrics
	}

	req := ai.ForecastRequest{
		UserID:      userID,
		BearerToken: bearer,
		Metrics:     toSnapshots(metrics),
	}
	if u.cycleFinder != nil {
		cycle, err := u.cycleFinder.LatestCycleInput(userID)
		if err != nil {
			return nil, err
		}
		if cycle != nil {
			if phase := analytics.CyclePhaseAt(cycle.PeriodStart, now); phase != analytics.PhaseUnknown {
				req.CyclePhase = string(phase)
			}
		}
	}

	start := time.Now()
	result, err := u.aiService.GenerateForecast(ctx, req)
	if err != nil {
		log.Printf("[Forecast] %s generation failed for user %s: %v", u.aiService.Name(), userID, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	log.Printf("[Forecast] %s generated forecast for user %s in %s", u.aiService.Name(), userID, time.Since(start).Round(time.Millisecond))

	forecast := &domain.WellnessForecast{
		UserID:   userID,
		Forecast: result.Forecast,
		Insights: datatypes.NewJSONType(domain.Insights{
			Sleep:      result.Insights.Sleep,
			Recovery:   result.Insights.Recovery,
			Metabolism: result.Insights.Metabolism,
		}),
		Recommendations: datatypes.JSONSlice[string](result.Recommendations),
		MetricsAnalyzed: datatypes.NewJSONType(domain.MetricsAnalyzed{Count: len(metrics)}),
		Provider:        u.aiService.Name(),
		GeneratedAt:     now,
	}
	if err := u.forecastRepo.Create(forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

func (u *forecastUsecase) Latest(userID string) (*domain.WellnessForecast, error) {
	return u.forecastRepo.Latest(userID)
}

func (u *forecastUsecase) History(userID string, limit int) ([]*domain.WellnessForecast, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	forecasts, err := u.forecastRepo.History(userID, limit)
	if err != nil {
		return nil, err
	}
	if forecasts == nil {
		forecasts = []*domain.WellnessForecast{}
	}
	return forecasts, nil
}

func toSnapshots(rows []*metricdomain.HealthMetric) []ai.MetricSnapshot {
	out := make([]ai.MetricSnapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, ai.MetricSnapshot{
			Date:               m.Date,
			SleepScore:         m.SleepScore,
			SleepDuration:      m.SleepDuration,
			HRV:                m.HRV,
			RestingHeartRate:   m.RestingHeartRate,
			RecoveryScore:      m.RecoveryScore,
			Steps:              m.Steps,
			AvgGlucose:         m.AvgGlucose,
			GlucoseVariability: m.GlucoseVariability,
			Temperature:        m.Temperature,
			VO2Max:             m.VO2Max,
		})
	}
	return out
}
