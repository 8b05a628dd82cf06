package usecase

import (
	"time"

	"cyclesense-backend/internal/cycle/domain"
	"cyclesense-backend/internal/cycle/dto"
	"cyclesense-backend/pkg/analytics"
)

// DefaultListLimit is the number of cycles returned by List.
const DefaultListLimit = 12

// CycleUsecase defines business logic for period tracking
type CycleUsecase interface {
	Create(userID string, req *dto.CreateCycleRequest, now time.Time) (*domain.CycleTracking, error)

	// Update applies a partial update after the 404-then-403 ownership check
	Update(userID, cycleID string, req *dto.UpdateCycleRequest, now time.Time) (*domain.CycleTracking, error)

	List(userID string) ([]*domain.CycleTracking, error)

	// Latest returns the latest cycle with its phase, or nil when none is logged
	Latest(userID string, now time.Time) (*domain.LatestCycle, error)

	LatestCycleInput(userID string) (*analytics.CycleInput, error)
}
