package domain

import (
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"

	"gorm.io/datatypes"
)

type Insights struct {
	Sleep      string `json:"sleep"`
	Recovery   string `json:"recovery"`
	Metabolism string `json:"metabolism"`
}

type MetricsAnalyzed struct {
	Count int `json:"count"`
}

// WellnessForecast is an immutable generated forecast.
type WellnessForecast struct {
	ID              string                              `json:"id" gorm:"primaryKey"`
	UserID          string                              `json:"user_id" gorm:"index:idx_forecast_user_generated;not null"`
	User            *authdomain.User                    `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Forecast        string                              `json:"forecast" gorm:"type:text;not null"`
	Insights        datatypes.JSONType[Insights]        `json:"insights"`
	Recommendations datatypes.JSONSlice[string]         `json:"recommendations"`
	MetricsAnalyzed datatypes.JSONType[MetricsAnalyzed] `json:"metrics_analyzed"`
	Provider        string                              `json:"provider"`
	GeneratedAt     time.Time                           `json:"generated_at" gorm:"index:idx_forecast_user_generated"`
	CreatedAt       time.Time                           `json:"created_at"`
}
