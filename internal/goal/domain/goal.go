package domain

import (
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	"cyclesense-backend/pkg/analytics"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
)

type HealthGoal struct {
	ID            string             `json:"id" gorm:"primaryKey"`
	UserID        string             `json:"user_id" gorm:"index;not null"`
	User          *authdomain.User   `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	GoalType      analytics.GoalType `json:"goal_type" gorm:"not null"`
	TargetMetric  string             `json:"target_metric" gorm:"not null"`
	TargetValue   float64            `json:"target_value" gorm:"not null"`
	BaselineValue *float64           `json:"baseline_value"`
	CurrentValue  *float64           `json:"current_value"`
	Deadline      *time.Time         `json:"deadline"`
	Status        GoalStatus         `json:"status" gorm:"default:active;index"`
	Description   *string            `json:"description"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Evaluate scores the goal. A missing current value counts as zero.
func (g *HealthGoal) Evaluate() analytics.GoalProgress {
	var current float64
	if g.CurrentValue != nil {
		current = *g.CurrentValue
	}
	return analytics.EvaluateGoal(g.GoalType, g.BaselineValue, current, g.TargetValue)
}

// GoalWithProgress is a goal as listed to clients.
type GoalWithProgress struct {
	*HealthGoal
	Progress float64 `json:"progress"`
	Achieved bool    `json:"achieved"`
}
