package repository

import (
	"errors"
	"time"

	"cyclesense-backend/internal/forecast/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormForecastRepository struct {
	db *gorm.DB
}

func NewGormForecastRepository(db *gorm.DB) ForecastRepository {
	return &gormForecastRepository{db: db}
}

func (r *gormForecastRepository) Create(forecast *domain.WellnessForecast) error {
	if forecast.ID == "" {
		forecast.ID = uuid.New().String()
	}
	if forecast.GeneratedAt.IsZero() {
		forecast.GeneratedAt = time.Now()
	}
	if forecast.Recommendations == nil {
		forecast.Recommendations = []string{}
	}
	return r.db.Create(forecast).Error
}

func (r *gormForecastRepository) Latest(userID string) (*domain.WellnessForecast, error) {
	var forecast domain.WellnessForecast
	err := r.db.Where("user_id = ?", userID).Order("generated_at DESC").First(&forecast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &forecast, nil
}

func (r *gormForecastRepository) History(userID string, limit int) ([]*domain.WellnessForecast, error) {
	var forecasts []*domain.WellnessForecast
	query := r.db.Where("user_id = ?", userID).Order("generated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&forecasts).Error; err != nil {
		return nil, err
	}
	return forecasts, nil
}
