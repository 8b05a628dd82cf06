package ai

import (
	"context"
	"time"
)

// MetricSnapshot is one day of metrics handed to a forecast backend.
type MetricSnapshot struct {
	Date               time.Time `json:"date"`
	SleepScore         *int      `json:"sleep_score,omitempty"`
	SleepDuration      *float64  `json:"sleep_duration,omitempty"`
	HRV                *int      `json:"hrv,omitempty"`
	RestingHeartRate   *int      `json:"resting_heart_rate,omitempty"`
	RecoveryScore      *int      `json:"recovery_score,omitempty"`
	Steps              *int      `json:"steps,omitempty"`
	AvgGlucose         *float64  `json:"avg_glucose,omitempty"`
	GlucoseVariability *float64  `json:"glucose_variability,omitempty"`
	Temperature        *float64  `json:"temperature,omitempty"`
	VO2Max             *float64  `json:"vo2_max,omitempty"`
}

// ForecastRequest carries the newest-first metrics of one user.
type ForecastRequest struct {
	UserID string
	// BearerToken is the caller's own token, forwarded by backends that
	// authenticate as the user.
	BearerToken string
	Metrics     []MetricSnapshot
	CyclePhase  string
}

type ForecastInsights struct {
	Sleep      string `json:"sleep"`
	Recovery   string `json:"recovery"`
	Metabolism string `json:"metabolism"`
}

type ForecastResult struct {
	Forecast        string           `json:"forecast"`
	Insights        ForecastInsights `json:"insights"`
	Recommendations []string         `json:"recommendations"`
}

// ForecastService is the interface for LLM wellness forecasts.
// Implement this interface to add new AI providers.
type ForecastService interface {
	GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error)
	Name() string
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderEdge   ProviderType = "edge"
	ProviderOllama ProviderType = "ollama"
	ProviderGemini ProviderType = "gemini"
)
