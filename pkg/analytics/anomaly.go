package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type AnomalyKind string

const (
	AnomalySpike AnomalyKind = "spike"
	AnomalyDrop  AnomalyKind = "drop"
)

const (
	anomalyBaselineWindow = 30
	anomalyScanWindow     = 10
	anomalyMinSamples     = 3
	anomalyZThreshold     = 2.0
)

type Anomaly struct {
	Date     time.Time   `json:"date"`
	Metric   Metric      `json:"metric"`
	Label    string      `json:"label"`
	Value    float64     `json:"value"`
	Mean     float64     `json:"mean"`
	ZScore   float64     `json:"z_score"`
	Severity Severity    `json:"severity"`
	Kind     AnomalyKind `json:"type"`
	Message  string      `json:"message"`
}

// SeverityForZ classifies an absolute z-score that is already above the
// anomaly threshold.
func SeverityForZ(z float64) Severity {
	switch {
	case z > 3:
		return SeverityHigh
	case z > 2.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// DetectAnomalies flags z-score outliers among the 10 most recent samples
// against a baseline of up to 30 samples. samples must be ordered newest
// first; zero values count as missing. The result is sorted newest first.
func DetectAnomalies(samples []Sample) []Anomaly {
	anomalies := []Anomaly{}
	if len(samples) < anomalyMinSamples {
		return anomalies
	}

	for _, m := range AnomalyMetrics {
		values := series(headSamples(samples, anomalyBaselineWindow), m)
		if len(values) < anomalyMinSamples {
			continue
		}
		mu := mean(values)
		sd := populationStdDev(values, mu)
		if sd == 0 {
			continue
		}

		for _, s := range headSamples(samples, anomalyScanWindow) {
			v := s.Value(m)
			if v <= 0 {
				continue
			}
			z := math.Abs(v-mu) / sd
			if z <= anomalyZThreshold {
				continue
			}

			kind := AnomalyDrop
			desc := "unusually low"
			if v > mu {
				kind = AnomalySpike
				desc = "unusually high"
			}
			anomalies = append(anomalies, Anomaly{
				Date:     s.Date,
				Metric:   m,
				Label:    m.Label(),
				Value:    v,
				Mean:     mu,
				ZScore:   z,
				Severity: SeverityForZ(z),
				Kind:     kind,
				Message:  fmt.Sprintf("%s %s at %.1f", m.Label(), desc, v),
			})
		}
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].Date.After(anomalies[j].Date)
	})
	return anomalies
}
