package repository

import (
	"errors"
	"time"

	"cyclesense-backend/internal/goal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormGoalRepository struct {
	db *gorm.DB
}

// NewGormGoalRepository creates a gorm-backed GoalRepository
func NewGormGoalRepository(db *gorm.DB) GoalRepository {
	return &gormGoalRepository{db: db}
}

func (r *gormGoalRepository) Create(goal *domain.HealthGoal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if goal.Status == "" {
		goal.Status = domain.GoalStatusActive
	}
	return r.db.Create(goal).Error
}

func (r *gormGoalRepository) FindByID(id string) (*domain.HealthGoal, error) {
	var goal domain.HealthGoal
	err := r.db.Where("id = ?", id).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *gormGoalRepository) ListByUser(userID string, status *domain.GoalStatus) ([]*domain.HealthGoal, error) {
	var goals []*domain.HealthGoal
	query := r.db.Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	// id breaks ties between goals created in the same instant
	if err := query.Order("created_at DESC").Order("id").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *gormGoalRepository) Update(goal *domain.HealthGoal) error {
	goal.UpdatedAt = time.Now()
	return r.db.Save(goal).Error
}

func (r *gormGoalRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.HealthGoal{}).Error
}
