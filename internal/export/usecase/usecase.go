package usecase

import (
	"time"

	"cyclesense-backend/internal/export/domain"
)

// ExportUsecase renders a user's data as CSV files
type ExportUsecase interface {
	// Metrics exports daily metrics with a date in [start, end]. Empty bounds
	// default to the last three months up to today.
	Metrics(userID, start, end string, now time.Time) (*domain.File, error)
	Cycles(userID, start, end string, now time.Time) (*domain.File, error)
	Goals(userID string, now time.Time) (*domain.File, error)
}
