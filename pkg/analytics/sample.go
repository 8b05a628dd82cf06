package analytics

import "time"

// Metric names a tracked numeric field of a daily health record.
type Metric string

const (
	MetricSleepScore  Metric = "sleep_score"
	MetricHRV         Metric = "hrv"
	MetricRecovery    Metric = "recovery_score"
	MetricGlucose     Metric = "avg_glucose"
	MetricTemperature Metric = "temperature"
)

// AnomalyMetrics are scanned by DetectAnomalies.
var AnomalyMetrics = []Metric{MetricSleepScore, MetricHRV, MetricRecovery, MetricGlucose}

// CorrelationMetrics are the axes of CorrelationMatrix.
var CorrelationMetrics = []Metric{MetricSleepScore, MetricHRV, MetricRecovery, MetricGlucose, MetricTemperature}

var metricLabels = map[Metric]string{
	MetricSleepScore:  "Sleep Score",
	MetricHRV:         "HRV",
	MetricRecovery:    "Recovery",
	MetricGlucose:     "Glucose",
	MetricTemperature: "Temp",
}

// Label returns the display name of a metric.
func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

// Sample is one day of metric values. A missing metric is absent from Values.
type Sample struct {
	Date   time.Time
	Values map[Metric]float64
}

// Value returns the metric value, or 0 when absent.
func (s Sample) Value(m Metric) float64 {
	return s.Values[m]
}

// series returns the positive values of m from samples, in input order.
func series(samples []Sample, m Metric) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v := s.Value(m); v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func headSamples(samples []Sample, n int) []Sample {
	if len(samples) > n {
		return samples[:n]
	}
	return samples
}
