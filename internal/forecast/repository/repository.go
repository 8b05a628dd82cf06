package repository

import "cyclesense-backend/internal/forecast/domain"

// ForecastRepository stores generated forecasts. Rows are never updated.
type ForecastRepository interface {
	Create(forecast *domain.WellnessForecast) error

	// Latest returns the most recently generated forecast, or nil
	Latest(userID string) (*domain.WellnessForecast, error)

	History(userID string, limit int) ([]*domain.WellnessForecast, error)
}
