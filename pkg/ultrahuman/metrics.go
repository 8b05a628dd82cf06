package ultrahuman

import (
	"encoding/json"
	"fmt"
	"math"
)

// Metric is one decoded element of the vendor's metric_data array. Each known
// type has its own struct; anything else decodes to UnknownMetric.
type Metric interface {
	Type() string
	apply(d *DailyMetrics)
}

type TimedValue struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

type SleepMetric struct {
	Score             *float64 `json:"score"`
	TotalSleepMinutes *float64 `json:"total_sleep_minutes"`
}

type HRVMetric struct {
	Values []TimedValue `json:"values"`
}

type RestingHRMetric struct {
	Avg    *float64     `json:"avg"`
	Values []TimedValue `json:"values"`
}

type StepsMetric struct {
	Values []TimedValue `json:"values"`
	Total  *float64     `json:"total"`
}

type RecoveryMetric struct {
	Score *float64 `json:"score"`
}

type GlucoseMetric struct {
	Values      []TimedValue `json:"values"`
	Variability *float64     `json:"variability"`
}

type TemperatureMetric struct {
	Values []TimedValue `json:"values"`
}

type VO2MaxMetric struct {
	Value *float64 `json:"value"`
}

type UnknownMetric struct {
	Kind string
	Raw  json.RawMessage
}

func (SleepMetric) Type() string       { return "sleep" }
func (HRVMetric) Type() string         { return "hrv" }
func (RestingHRMetric) Type() string   { return "night_rhr" }
func (StepsMetric) Type() string       { return "steps" }
func (RecoveryMetric) Type() string    { return "recovery" }
func (GlucoseMetric) Type() string     { return "glucose" }
func (TemperatureMetric) Type() string { return "temp" }
func (VO2MaxMetric) Type() string      { return "vo2_max" }
func (u UnknownMetric) Type() string   { return u.Kind }

func (m SleepMetric) apply(d *DailyMetrics) {
	if m.Score != nil {
		d.SleepScore = roundInt(*m.Score)
	}
	if m.TotalSleepMinutes != nil {
		hours := math.Round(*m.TotalSleepMinutes/60*100) / 100
		d.SleepDuration = &hours
	}
}

func (m HRVMetric) apply(d *DailyMetrics) {
	if avg, ok := average(m.Values); ok {
		d.HRV = roundInt(avg)
	}
}

func (m RestingHRMetric) apply(d *DailyMetrics) {
	if m.Avg != nil {
		d.RestingHeartRate = roundInt(*m.Avg)
		return
	}
	if avg, ok := average(m.Values); ok {
		d.RestingHeartRate = roundInt(avg)
	}
}

func (m StepsMetric) apply(d *DailyMetrics) {
	if v, ok := latest(m.Values); ok {
		d.Steps = roundInt(v)
		return
	}
	if m.Total != nil {
		d.Steps = roundInt(*m.Total)
	}
}

func (m RecoveryMetric) apply(d *DailyMetrics) {
	if m.Score != nil {
		d.RecoveryScore = roundInt(*m.Score)
	}
}

func (m GlucoseMetric) apply(d *DailyMetrics) {
	if avg, ok := average(m.Values); ok {
		d.AvgGlucose = &avg
	}
	if m.Variability != nil {
		v := *m.Variability
		d.GlucoseVariability = &v
	}
}

func (m TemperatureMetric) apply(d *DailyMetrics) {
	if v, ok := latest(m.Values); ok {
		d.Temperature = &v
	}
}

func (m VO2MaxMetric) apply(d *DailyMetrics) {
	if m.Value != nil {
		v := *m.Value
		d.VO2Max = &v
	}
}

func (UnknownMetric) apply(*DailyMetrics) {}

// DailyMetrics is the per-day aggregate. Absent metrics are nil.
type DailyMetrics struct {
	SleepScore         *int
	SleepDuration      *float64
	HRV                *int
	RestingHeartRate   *int
	RecoveryScore      *int
	Steps              *int
	AvgGlucose         *float64
	GlucoseVariability *float64
	Temperature        *float64
	VO2Max             *float64
}

// Empty reports whether no metric was present.
func (d DailyMetrics) Empty() bool {
	return d == DailyMetrics{}
}

// DayPayload is one decoded day response.
type DayPayload struct {
	Metrics []Metric
	Raw     json.RawMessage
}

type rawEnvelope struct {
	Data struct {
		MetricData []struct {
			Type   string          `json:"type"`
			Object json.RawMessage `json:"object"`
		} `json:"metric_data"`
	} `json:"data"`
}

// DecodeDay parses a daily metrics response body.
func DecodeDay(body []byte) (*DayPayload, error) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode ultrahuman payload: %w", err)
	}

	payload := &DayPayload{Raw: json.RawMessage(body)}
	for _, item := range env.Data.MetricData {
		m, err := decodeMetric(item.Type, item.Object)
		if err != nil {
			return nil, fmt.Errorf("decode %s metric: %w", item.Type, err)
		}
		payload.Metrics = append(payload.Metrics, m)
	}
	return payload, nil
}

func decodeMetric(kind string, obj json.RawMessage) (Metric, error) {
	var m Metric
	switch kind {
	case "sleep":
		m = &SleepMetric{}
	case "hrv":
		m = &HRVMetric{}
	case "night_rhr":
		m = &RestingHRMetric{}
	case "steps":
		m = &StepsMetric{}
	case "recovery":
		m = &RecoveryMetric{}
	case "glucose":
		m = &GlucoseMetric{}
	case "temp":
		m = &TemperatureMetric{}
	case "vo2_max":
		m = &VO2MaxMetric{}
	default:
		return UnknownMetric{Kind: kind, Raw: obj}, nil
	}

	if len(obj) > 0 && string(obj) != "null" {
		if err := json.Unmarshal(obj, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ToDailyMetrics folds the decoded metrics into one aggregate.
func (p *DayPayload) ToDailyMetrics() DailyMetrics {
	var d DailyMetrics
	for _, m := range p.Metrics {
		m.apply(&d)
	}
	return d
}

func average(values []TimedValue) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v.Value
	}
	return sum / float64(len(values)), true
}

func latest(values []TimedValue) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, v := range values[1:] {
		if v.Timestamp > best.Timestamp {
			best = v
		}
	}
	return best.Value, true
}

func roundInt(v float64) *int {
	n := int(math.Round(v))
	return &n
}
