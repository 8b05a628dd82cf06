package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForecastJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", `{"forecast":"Good week ahead","insights":{"sleep":"s","recovery":"r","metabolism":"m"},"recommendations":["a","b"]}`},
		{"fenced", "```json\n{\"forecast\":\"Good week ahead\",\"insights\":{\"sleep\":\"s\",\"recovery\":\"r\",\"metabolism\":\"m\"},\"recommendations\":[\"a\",\"b\"]}\n```"},
		{"surrounding prose", "Here you go:\n{\"forecast\":\"Good week ahead\",\"insights\":{\"sleep\":\"s\",\"recovery\":\"r\",\"metabolism\":\"m\"},\"recommendations\":[\"a\",\"b\"]}\nHope this helps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseForecastJSON(tt.text)
			require.NoError(t, err)
			assert.Equal(t, "Good week ahead", got.Forecast)
			assert.Equal(t, ForecastInsights{Sleep: "s", Recovery: "r", Metabolism: "m"}, got.Insights)
			assert.Equal(t, []string{"a", "b"}, got.Recommendations)
		})
	}
}

func TestParseForecastJSONCapsRecommendations(t *testing.T) {
	got, err := ParseForecastJSON(`{"forecast":"ok","recommendations":["1","","2","3","4","5","6","7"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, got.Recommendations)
}

func TestParseForecastJSONErrors(t *testing.T) {
	_, err := ParseForecastJSON("I cannot help with that")
	assert.Error(t, err)

	_, err = ParseForecastJSON(`{"forecast":"   ","recommendations":[]}`)
	assert.ErrorIs(t, err, ErrEmptyForecast)

	_, err = ParseForecastJSON(`{"forecast": 12}`)
	assert.Error(t, err)
}

func TestBuildForecastPrompt(t *testing.T) {
	sleep, hrv := 82, 61
	prompt := BuildForecastPrompt(ForecastRequest{
		Metrics: []MetricSnapshot{
			{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), SleepScore: &sleep, HRV: &hrv},
		},
		CyclePhase: "luteal",
	})

	assert.Contains(t, prompt, "Day 1 (2025-06-01): Sleep 82")
	assert.Contains(t, prompt, "HRV 61 ms")
	assert.Contains(t, prompt, "Glucose N/A")
	assert.Contains(t, prompt, "Current menstrual cycle phase: luteal")
}
