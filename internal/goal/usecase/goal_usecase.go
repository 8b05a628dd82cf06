package usecase

import (
	"fmt"

	"cyclesense-backend/internal/goal/domain"
	"cyclesense-backend/internal/goal/dto"
	"cyclesense-backend/internal/goal/repository"
	"cyclesense-backend/pkg/analytics"
	"cyclesense-backend/pkg/dateutil"
)

type goalUsecase struct {
	goalRepo repository.GoalRepository
}

func NewGoalUsecase(goalRepo repository.GoalRepository) GoalUsecase {
	return &goalUsecase{goalRepo: goalRepo}
}

func (u *goalUsecase) List(userID, status string) ([]domain.GoalWithProgress, error) {
	var filter *domain.GoalStatus
	if status != "" {
		s := domain.GoalStatus(status)
		if s != domain.GoalStatusActive && s != domain.GoalStatusCompleted {
			return nil, domain.ErrInvalidStatus
		}
		filter = &s
	}

	goals, err := u.goalRepo.ListByUser(userID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]domain.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, withProgress(g))
	}
	return out, nil
}

func (u *goalUsecase) ListAll(userID string) ([]*domain.HealthGoal, error) {
	return u.goalRepo.ListByUser(userID, nil)
}

func (u *goalUsecase) Create(userID string, req *dto.CreateGoalRequest) (*domain.GoalWithProgress, error) {
	deadline, err := dateutil.ParseOptional(req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	goal := &domain.HealthGoal{
		UserID:        userID,
		GoalType:      analytics.GoalType(req.GoalType),
		TargetMetric:  req.TargetMetric,
		TargetValue:   req.TargetValue,
		BaselineValue: req.BaselineValue,
		CurrentValue:  req.CurrentValue,
		Deadline:      deadline,
		Status:        domain.GoalStatusActive,
		Description:   req.Description,
	}
	if err := u.goalRepo.Create(goal); err != nil {
		return nil, err
	}

	result := withProgress(goal)
	return &result, nil
}

func (u *goalUsecase) Update(userID, goalID string, req *dto.UpdateGoalRequest) (*domain.GoalWithProgress, error) {
	goal, err := u.getOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.TargetValue != nil {
		goal.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = req.CurrentValue
	}
	if req.Deadline != nil {
		deadline, err := dateutil.ParseOptional(req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
		}
		goal.Deadline = deadline
	}
	if req.Status != nil {
		goal.Status = domain.GoalStatus(*req.Status)
	}
	if req.Description != nil {
		goal.Description = req.Description
	}

	if err := u.goalRepo.Update(goal); err != nil {
		return nil, err
	}

	result := withProgress(goal)
	return &result, nil
}

func (u *goalUsecase) Delete(userID, goalID string) error {
	goal, err := u.getOwned(userID, goalID)
	if err != nil {
		return err
	}
	return u.goalRepo.Delete(goal.ID)
}

func (u *goalUsecase) getOwned(userID, goalID string) (*domain.HealthGoal, error) {
	goal, err := u.goalRepo.FindByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	if goal.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return goal, nil
}

func withProgress(g *domain.HealthGoal) domain.GoalWithProgress {
	p := g.Evaluate()
	return domain.GoalWithProgress{HealthGoal: g, Progress: p.Progress, Achieved: p.Achieved}
}
