package dto

// CreateCycleRequest logs a new period. Dates are YYYY-MM-DD or RFC 3339.
type CreateCycleRequest struct {
	PeriodStartDate string   `json:"period_start_date" binding:"required"`
	PeriodEndDate   *string  `json:"period_end_date"`
	CycleLength     *int     `json:"cycle_length" binding:"omitempty,min=1,max=120"`
	FlowIntensity   *string  `json:"flow_intensity" binding:"omitempty,oneof=light medium heavy"`
	Symptoms        []string `json:"symptoms"`
	Notes           *string  `json:"notes"`
}

// UpdateCycleRequest changes only the fields that are present.
type UpdateCycleRequest struct {
	PeriodStartDate *string   `json:"period_start_date"`
	PeriodEndDate   *string   `json:"period_end_date"`
	CycleLength     *int      `json:"cycle_length" binding:"omitempty,min=1,max=120"`
	FlowIntensity   *string   `json:"flow_intensity" binding:"omitempty,oneof=light medium heavy"`
	Symptoms        *[]string `json:"symptoms"`
	Notes           *string   `json:"notes"`
}
