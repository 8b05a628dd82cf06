package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// EdgeFunctionService delegates generation to the hosted generate-forecast
// function, authenticating as the calling user.
type EdgeFunctionService struct {
	functionURL string
	anonKey     string
	client      *http.Client
}

func NewEdgeFunctionService(supabaseURL, anonKey string, client *http.Client) *EdgeFunctionService {
	return &EdgeFunctionService{
		functionURL: strings.TrimRight(supabaseURL, "/") + "/functions/v1/generate-forecast",
		anonKey:     anonKey,
		client:      client,
	}
}

func (e *EdgeFunctionService) Name() string { return string(ProviderEdge) }

type edgeMetric struct {
	Date             string   `json:"date"`
	HRVScore         *int     `json:"hrvScore,omitempty"`
	SleepScore       *int     `json:"sleepScore,omitempty"`
	GlucoseLevel     *float64 `json:"glucoseLevel,omitempty"`
	Steps            *int     `json:"steps,omitempty"`
	RestingHeartRate *int     `json:"restingHeartRate,omitempty"`
}

func (e *EdgeFunctionService) GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	if req.BearerToken == "" {
		return nil, errors.New("edge function requires the caller's bearer token")
	}

	metrics := make([]edgeMetric, 0, len(req.Metrics))
	for _, m := range req.Metrics {
		metrics = append(metrics, edgeMetric{
			Date:             m.Date.Format("2006-01-02"),
			HRVScore:         m.HRV,
			SleepScore:       m.SleepScore,
			GlucoseLevel:     m.AvgGlucose,
			Steps:            m.Steps,
			RestingHeartRate: m.RestingHeartRate,
		})
	}

	payload := map[string]interface{}{
		"userId":  req.UserID,
		"metrics": metrics,
	}
	if req.CyclePhase != "" {
		payload["cyclePhase"] = req.CyclePhase
	}

	headers := map[string]string{"Authorization": "Bearer " + req.BearerToken}
	if e.anonKey != "" {
		headers["apikey"] = e.anonKey
	}

	// the function may answer null for insights or recommendations
	var result struct {
		Forecast        string            `json:"forecast"`
		Insights        *ForecastInsights `json:"insights"`
		Recommendations []string          `json:"recommendations"`
	}
	if err := postJSON(ctx, e.client, "edge function", e.functionURL, headers, payload, &result); err != nil {
		return nil, err
	}

	out := &ForecastResult{Forecast: result.Forecast, Recommendations: result.Recommendations}
	if result.Insights != nil {
		out.Insights = *result.Insights
	}
	return normalizeResult(out)
}
