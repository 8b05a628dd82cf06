package domain

import "errors"

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidDate   = errors.New("invalid deadline")
	ErrInvalidStatus = errors.New("invalid status")
)
