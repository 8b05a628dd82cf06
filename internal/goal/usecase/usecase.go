package usecase

import (
	"cyclesense-backend/internal/goal/domain"
	"cyclesense-backend/internal/goal/dto"
)

// GoalUsecase defines business logic for health goals
type GoalUsecase interface {
	// List returns the user's goals with computed progress. status may be empty.
	List(userID, status string) ([]domain.GoalWithProgress, error)

	Create(userID string, req *dto.CreateGoalRequest) (*domain.GoalWithProgress, error)
	Update(userID, goalID string, req *dto.UpdateGoalRequest) (*domain.GoalWithProgress, error)
	Delete(userID, goalID string) error

	// ListAll returns raw goals for export
	ListAll(userID string) ([]*domain.HealthGoal, error)
}
