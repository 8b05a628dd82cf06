package domain

import "errors"

var (
	ErrNoMetrics        = errors.New("no health metrics available")
	ErrGenerationFailed = errors.New("failed to generate wellness forecast")
)
