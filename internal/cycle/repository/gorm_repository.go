package repository

import (
	"errors"
	"time"

	"cyclesense-backend/internal/cycle/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormCycleRepository struct {
	db *gorm.DB
}

// NewGormCycleRepository creates a gorm-backed CycleRepository
func NewGormCycleRepository(db *gorm.DB) CycleRepository {
	return &gormCycleRepository{db: db}
}

func (r *gormCycleRepository) Create(cycle *domain.CycleTracking) error {
	if cycle.ID == "" {
		cycle.ID = uuid.New().String()
	}
	if cycle.Symptoms == nil {
		cycle.Symptoms = []string{}
	}
	return r.db.Create(cycle).Error
}

func (r *gormCycleRepository) FindByID(id string) (*domain.CycleTracking, error) {
	var cycle domain.CycleTracking
	err := r.db.Where("id = ?", id).First(&cycle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cycle, nil
}

func (r *gormCycleRepository) Update(cycle *domain.CycleTracking) error {
	cycle.UpdatedAt = time.Now()
	return r.db.Save(cycle).Error
}

func (r *gormCycleRepository) ListByUser(userID string, limit int) ([]*domain.CycleTracking, error) {
	var cycles []*domain.CycleTracking
	query := r.db.Where("user_id = ?", userID).Order("period_start_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (r *gormCycleRepository) Latest(userID string) (*domain.CycleTracking, error) {
	var cycle domain.CycleTracking
	err := r.db.Where("user_id = ?", userID).Order("period_start_date DESC").First(&cycle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cycle, nil
}

func (r *gormCycleRepository) ListByDateRange(userID string, start, end time.Time) ([]*domain.CycleTracking, error) {
	var cycles []*domain.CycleTracking
	err := r.db.
		Where("user_id = ? AND period_start_date >= ? AND period_start_date <= ?", userID, start, end).
		Order("period_start_date DESC").
		Find(&cycles).Error
	if err != nil {
		return nil, err
	}
	return cycles, nil
}
