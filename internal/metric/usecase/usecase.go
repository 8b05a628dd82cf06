package usecase

import (
	"time"

	"cyclesense-backend/internal/metric/domain"
	"cyclesense-backend/pkg/analytics"
)

// DefaultListLimit is the number of days returned by the dashboard listing.
const DefaultListLimit = 30

// MetricUsecase defines read access and server-side analysis of health metrics
type MetricUsecase interface {
	List(userID string, limit int) ([]*domain.HealthMetric, error)
	Insights(userID string, now time.Time) (*InsightsReport, error)
}

// CycleFinder returns the most recent logged period for a user, or nil.
type CycleFinder interface {
	LatestCycleInput(userID string) (*analytics.CycleInput, error)
}

// InsightsReport bundles every computed view over the recent metrics.
type InsightsReport struct {
	Trends       []analytics.Insight         `json:"trends"`
	Anomalies    []analytics.Anomaly         `json:"anomalies"`
	Correlations analytics.CorrelationMatrix `json:"correlations"`
	DaysAnalyzed int                         `json:"days_analyzed"`
}
