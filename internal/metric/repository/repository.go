package repository

import (
	"time"

	"cyclesense-backend/internal/metric/domain"
)

// MetricRepository defines data access for daily health metrics
type MetricRepository interface {
	// ListByUser returns up to limit rows, newest date first
	ListByUser(userID string, limit int) ([]*domain.HealthMetric, error)

	// ListByDateRange returns rows with start <= date <= end, newest first
	ListByDateRange(userID string, start, end time.Time) ([]*domain.HealthMetric, error)

	// UpsertByDate inserts the day or merges into the existing row for
	// (user, calendar date). It returns the stored row.
	UpsertByDate(metric *domain.HealthMetric) (*domain.HealthMetric, error)

	CountByUser(userID string) (int64, error)
}
