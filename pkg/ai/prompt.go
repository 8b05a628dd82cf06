package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MaxRecommendations caps the recommendations kept from a model reply.
const MaxRecommendations = 5

var ErrEmptyForecast = errors.New("model returned no forecast")

const systemPrompt = "You are a compassionate women's health AI advisor specializing in interpreting biometric data and providing actionable wellness guidance. Consider menstrual cycle impacts on health metrics."

// BuildForecastPrompt renders the metrics as the user prompt.
func BuildForecastPrompt(req ForecastRequest) string {
	var b strings.Builder
	b.WriteString("Based on the following health metrics from the past week, provide a personalized wellness forecast and recommendations.\n\nHealth Metrics:\n")

	for i, m := range req.Metrics {
		fmt.Fprintf(&b, "Day %d (%s): Sleep %s, Sleep duration %s h, HRV %s ms, Resting HR %s bpm, Recovery %s, Glucose %s mg/dL, Steps %s, Temperature %s\n",
			i+1,
			m.Date.Format("2006-01-02"),
			intOrNA(m.SleepScore),
			floatOrNA(m.SleepDuration),
			intOrNA(m.HRV),
			intOrNA(m.RestingHeartRate),
			intOrNA(m.RecoveryScore),
			floatOrNA(m.AvgGlucose),
			intOrNA(m.Steps),
			floatOrNA(m.Temperature),
		)
	}

	if req.CyclePhase != "" {
		fmt.Fprintf(&b, "\nCurrent menstrual cycle phase: %s\n", req.CyclePhase)
	}

	b.WriteString(`
Please provide:
1. A brief forecast about the user's wellness trajectory (2-3 sentences)
2. Key insights about patterns in the data
3. 3-5 actionable recommendations for improving health

Respond in JSON format with this structure:
{
  "forecast": "string",
  "insights": {"sleep": "string", "recovery": "string", "metabolism": "string"},
  "recommendations": ["string", "string", "string"]
}`)
	return b.String()
}

// ParseForecastJSON extracts the forecast object from a model reply. Code
// fences and text around the object are ignored.
func ParseForecastJSON(text string) (*ForecastResult, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var result ForecastResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse forecast JSON: %w", err)
	}
	return normalizeResult(&result)
}

func normalizeResult(r *ForecastResult) (*ForecastResult, error) {
	r.Forecast = strings.TrimSpace(r.Forecast)
	if r.Forecast == "" {
		return nil, ErrEmptyForecast
	}

	recs := make([]string, 0, MaxRecommendations)
	for _, rec := range r.Recommendations {
		rec = strings.TrimSpace(rec)
		if rec == "" {
			continue
		}
		recs = append(recs, rec)
		if len(recs) == MaxRecommendations {
			break
		}
	}
	r.Recommendations = recs
	return r, nil
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func floatOrNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}
