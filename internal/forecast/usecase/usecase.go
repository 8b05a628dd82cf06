package usecase

import (
	"context"
	"time"

	"cyclesense-backend/internal/forecast/domain"
)

// MetricsWindow is how many recent days are sent to the model.
const MetricsWindow = 7

const DefaultHistoryLimit = 10

// ForecastUsecase defines wellness forecast generation and retrieval
type ForecastUsecase interface {
	// Generate asks the configured backend for a forecast over the latest
	// metrics and stores it. bearer is the caller's token.
	Generate(ctx context.Context, userID, bearer string, now time.Time) (*domain.WellnessForecast, error)

	Latest(userID string) (*domain.WellnessForecast, error)
	History(userID string, limit int) ([]*domain.WellnessForecast, error)
}
