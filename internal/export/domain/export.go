package domain

import "errors"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("start date is after end date")
)

// DateError names the query parameter that failed to parse.
type DateError struct {
	Field string
}

func (e *DateError) Error() string { return "invalid " + e.Field }

func (e *DateError) Unwrap() error { return ErrInvalidDate }

// File is a rendered CSV download.
type File struct {
	Filename string
	Content  []byte
}

// DefaultRangeMonths is how far back an export goes when no start date is given.
const DefaultRangeMonths = 3
