package usecase

import (
	"fmt"
	"time"

	"cyclesense-backend/internal/cycle/domain"
	"cyclesense-backend/internal/cycle/dto"
	"cyclesense-backend/internal/cycle/repository"
	"cyclesense-backend/pkg/analytics"
	"cyclesense-backend/pkg/dateutil"
)

type cycleUsecase struct {
	cycleRepo repository.CycleRepository
}

func NewCycleUsecase(cycleRepo repository.CycleRepository) CycleUsecase {
	return &cycleUsecase{cycleRepo: cycleRepo}
}

func (u *cycleUsecase) Create(userID string, req *dto.CreateCycleRequest, now time.Time) (*domain.CycleTracking, error) {
	start, err := parseDate(req.PeriodStartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.PeriodEndDate)
	if err != nil {
		return nil, err
	}

	cycle := &domain.CycleTracking{
		UserID:          userID,
		PeriodStartDate: start,
		PeriodEndDate:   end,
		CycleLength:     req.CycleLength,
		Symptoms:        append([]string{}, req.Symptoms...),
		Notes:           req.Notes,
	}
	if req.FlowIntensity != nil {
		flow := domain.FlowIntensity(*req.FlowIntensity)
		cycle.FlowIntensity = &flow
	}

	if err := validateDates(cycle, now); err != nil {
		return nil, err
	}
	if err := u.cycleRepo.Create(cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

func (u *cycleUsecase) Update(userID, cycleID string, req *dto.UpdateCycleRequest, now time.Time) (*domain.CycleTracking, error) {
	cycle, err := u.getOwned(userID, cycleID)
	if err != nil {
		return nil, err
	}

	if req.PeriodStartDate != nil {
		start, err := parseDate(*req.PeriodStartDate)
		if err != nil {
			return nil, err
		}
		cycle.PeriodStartDate = start
	}
	if req.PeriodEndDate != nil {
		// an empty string clears the end date
		end, err := parseOptionalDate(req.PeriodEndDate)
		if err != nil {
			return nil, err
		}
		cycle.PeriodEndDate = end
	}
	if req.CycleLength != nil {
		cycle.CycleLength = req.CycleLength
	}
	if req.FlowIntensity != nil {
		flow := domain.FlowIntensity(*req.FlowIntensity)
		cycle.FlowIntensity = &flow
	}
	if req.Symptoms != nil {
		cycle.Symptoms = append([]string{}, (*req.Symptoms)...)
	}
	if req.Notes != nil {
		cycle.Notes = req.Notes
	}

	if err := validateDates(cycle, now); err != nil {
		return nil, err
	}
	if err := u.cycleRepo.Update(cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

func (u *cycleUsecase) List(userID string) ([]*domain.CycleTracking, error) {
	cycles, err := u.cycleRepo.ListByUser(userID, DefaultListLimit)
	if err != nil {
		return nil, err
	}
	if cycles == nil {
		cycles = []*domain.CycleTracking{}
	}
	return cycles, nil
}

func (u *cycleUsecase) Latest(userID string, now time.Time) (*domain.LatestCycle, error) {
	cycle, err := u.cycleRepo.Latest(userID)
	if err != nil || cycle == nil {
		return nil, err
	}
	return &domain.LatestCycle{
		Cycle:  cycle,
		Status: analytics.Status(cycle.PeriodStartDate, cycle.Length(), now),
	}, nil
}

func (u *cycleUsecase) LatestCycleInput(userID string) (*analytics.CycleInput, error) {
	cycle, err := u.cycleRepo.Latest(userID)
	if err != nil {
		return nil, fmt.Errorf("find latest cycle: %w", err)
	}
	if cycle == nil {
		return nil, nil
	}
	return cycle.CycleInput(), nil
}

func (u *cycleUsecase) getOwned(userID, cycleID string) (*domain.CycleTracking, error) {
	cycle, err := u.cycleRepo.FindByID(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, domain.ErrCycleNotFound
	}
	if cycle.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return cycle, nil
}

func validateDates(cycle *domain.CycleTracking, now time.Time) error {
	if cycle.PeriodStartDate.After(now) {
		return domain.ErrFutureStartDate
	}
	if cycle.PeriodEndDate != nil && cycle.PeriodEndDate.Before(cycle.PeriodStartDate) {
		return domain.ErrEndBeforeStart
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	t, err := dateutil.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}
	return t, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	t, err := dateutil.ParseOptional(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}
	return t, nil
}
