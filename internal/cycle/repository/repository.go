package repository

import (
	"time"

	"cyclesense-backend/internal/cycle/domain"
)

// CycleRepository defines data access for logged periods
type CycleRepository interface {
	Create(cycle *domain.CycleTracking) error
	FindByID(id string) (*domain.CycleTracking, error)
	Update(cycle *domain.CycleTracking) error

	// ListByUser returns up to limit cycles, latest start date first
	ListByUser(userID string, limit int) ([]*domain.CycleTracking, error)

	// Latest returns the cycle with the latest start date, or nil
	Latest(userID string) (*domain.CycleTracking, error)

	// ListByDateRange filters on the start date, inclusive on both ends
	ListByDateRange(userID string, start, end time.Time) ([]*domain.CycleTracking, error)
}
