package dto

type CreateGoalRequest struct {
	GoalType      string   `json:"goal_type" binding:"required,oneof=improve maintain reduce"`
	TargetMetric  string   `json:"target_metric" binding:"required"`
	TargetValue   float64  `json:"target_value" binding:"required,gt=0"`
	BaselineValue *float64 `json:"baseline_value"`
	CurrentValue  *float64 `json:"current_value"`
	Deadline      *string  `json:"deadline"`
	Description   *string  `json:"description"`
}

// UpdateGoalRequest changes only present fields. The baseline is fixed at
// creation and cannot be updated.
type UpdateGoalRequest struct {
	TargetValue  *float64 `json:"target_value" binding:"omitempty,gt=0"`
	CurrentValue *float64 `json:"current_value"`
	Deadline     *string  `json:"deadline"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active completed"`
	Description  *string  `json:"description"`
}
