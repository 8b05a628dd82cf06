package domain

import (
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	"cyclesense-backend/pkg/analytics"

	"gorm.io/datatypes"
)

type FlowIntensity string

const (
	FlowLight  FlowIntensity = "light"
	FlowMedium FlowIntensity = "medium"
	FlowHeavy  FlowIntensity = "heavy"
)

// CycleTracking is one logged period.
type CycleTracking struct {
	ID              string                      `json:"id" gorm:"primaryKey"`
	UserID          string                      `json:"user_id" gorm:"index;not null"`
	User            *authdomain.User            `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	PeriodStartDate time.Time                   `json:"period_start_date" gorm:"not null;index"`
	PeriodEndDate   *time.Time                  `json:"period_end_date"`
	CycleLength     *int                        `json:"cycle_length"`
	FlowIntensity   *FlowIntensity              `json:"flow_intensity"`
	Symptoms        datatypes.JSONSlice[string] `json:"symptoms"`
	Notes           *string                     `json:"notes"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// Length returns the logged cycle length, or 0 when unknown.
func (c *CycleTracking) Length() int {
	if c.CycleLength == nil {
		return 0
	}
	return *c.CycleLength
}

// CycleInput is the view used by metric insights.
func (c *CycleTracking) CycleInput() *analytics.CycleInput {
	return &analytics.CycleInput{PeriodStart: c.PeriodStartDate, CycleLength: c.Length()}
}

// LatestCycle is a cycle plus where today falls within it.
type LatestCycle struct {
	Cycle  *CycleTracking        `json:"cycle"`
	Status analytics.CycleStatus `json:"status"`
}
