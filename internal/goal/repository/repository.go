package repository

import "cyclesense-backend/internal/goal/domain"

// GoalRepository defines data access for health goals
type GoalRepository interface {
	Create(goal *domain.HealthGoal) error
	FindByID(id string) (*domain.HealthGoal, error)

	// ListByUser returns goals newest first, filtered by status when non-nil
	ListByUser(userID string, status *domain.GoalStatus) ([]*domain.HealthGoal, error)

	Update(goal *domain.HealthGoal) error
	Delete(id string) error
}
