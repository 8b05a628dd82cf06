package domain

import "errors"

var (
	ErrCycleNotFound   = errors.New("cycle not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrFutureStartDate = errors.New("period start date cannot be in the future")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEndBeforeStart  = errors.New("period end date is before the start date")
)
