package usecase

import (
	"fmt"
	"time"

	"cyclesense-backend/internal/metric/domain"
	"cyclesense-backend/internal/metric/repository"
	"cyclesense-backend/pkg/analytics"
)

type metricUsecase struct {
	metricRepo  repository.MetricRepository
	cycleFinder CycleFinder
}

// NewMetricUsecase creates a MetricUsecase. cycleFinder may be nil, in which
// case insights carry no cycle phase.
func NewMetricUsecase(metricRepo repository.MetricRepository, cycleFinder CycleFinder) MetricUsecase {
	return &metricUsecase{
		metricRepo:  metricRepo,
		cycleFinder: cycleFinder,
	}
}

func (u *metricUsecase) List(userID string, limit int) ([]*domain.HealthMetric, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := u.metricRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*domain.HealthMetric{}
	}
	return rows, nil
}

func (u *metricUsecase) Insights(userID string, now time.Time) (*InsightsReport, error) {
	rows, err := u.metricRepo.ListByUser(userID, DefaultListLimit)
	if err != nil {
		return nil, err
	}

	var cycle *analytics.CycleInput
	if u.cycleFinder != nil {
		cycle, err = u.cycleFinder.LatestCycleInput(userID)
		if err != nil {
			return nil, fmt.Errorf("load latest cycle: %w", err)
		}
	}

	samples := domain.Samples(rows)
	trends := analytics.BuildInsights(samples, cycle, now)
	if trends == nil {
		trends = []analytics.Insight{}
	}

	return &InsightsReport{
		Trends:       trends,
		Anomalies:    analytics.DetectAnomalies(samples),
		Correlations: analytics.Correlations(samples),
		DaysAnalyzed: len(rows),
	}, nil
}
