package domain

import (
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	"cyclesense-backend/pkg/analytics"

	"gorm.io/datatypes"
)

// HealthMetric is one user's biometrics for one calendar day. Fields the
// wearable did not report stay nil.
type HealthMetric struct {
	ID     string           `json:"id" gorm:"primaryKey"`
	UserID string           `json:"user_id" gorm:"not null;uniqueIndex:idx_health_metrics_user_date"`
	User   *authdomain.User `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Date   time.Time        `json:"date" gorm:"not null;uniqueIndex:idx_health_metrics_user_date"`

	SleepScore         *int     `json:"sleep_score"`
	SleepDuration      *float64 `json:"sleep_duration"` // hours
	HRV                *int     `json:"hrv" gorm:"column:hrv"`
	RestingHeartRate   *int     `json:"resting_heart_rate"`
	RecoveryScore      *int     `json:"recovery_score"`
	Steps              *int     `json:"steps"`
	AvgGlucose         *float64 `json:"avg_glucose"`
	GlucoseVariability *float64 `json:"glucose_variability"`
	Temperature        *float64 `json:"temperature"`
	VO2Max             *float64 `json:"vo2_max" gorm:"column:vo2_max"`

	RawData   datatypes.JSON `json:"raw_data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// DayStart maps t to midnight UTC of its own calendar date.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Merge copies the non-nil fields of in onto m. Raw data is replaced when
// the incoming record carries any.
func (m *HealthMetric) Merge(in *HealthMetric) {
	mergeInt(&m.SleepScore, in.SleepScore)
	mergeFloat(&m.SleepDuration, in.SleepDuration)
	mergeInt(&m.HRV, in.HRV)
	mergeInt(&m.RestingHeartRate, in.RestingHeartRate)
	mergeInt(&m.RecoveryScore, in.RecoveryScore)
	mergeInt(&m.Steps, in.Steps)
	mergeFloat(&m.AvgGlucose, in.AvgGlucose)
	mergeFloat(&m.GlucoseVariability, in.GlucoseVariability)
	mergeFloat(&m.Temperature, in.Temperature)
	mergeFloat(&m.VO2Max, in.VO2Max)
	if len(in.RawData) > 0 {
		m.RawData = in.RawData
	}
}

// ReportedColumns names the columns m carries a value for.
func (m *HealthMetric) ReportedColumns() []string {
	var cols []string
	add := func(set bool, col string) {
		if set {
			cols = append(cols, col)
		}
	}
	add(m.SleepScore != nil, "sleep_score")
	add(m.SleepDuration != nil, "sleep_duration")
	add(m.HRV != nil, "hrv")
	add(m.RestingHeartRate != nil, "resting_heart_rate")
	add(m.RecoveryScore != nil, "recovery_score")
	add(m.Steps != nil, "steps")
	add(m.AvgGlucose != nil, "avg_glucose")
	add(m.GlucoseVariability != nil, "glucose_variability")
	add(m.Temperature != nil, "temperature")
	add(m.VO2Max != nil, "vo2_max")
	add(len(m.RawData) > 0, "raw_data")
	return cols
}

// Sample converts the row for the analytics package.
func (m *HealthMetric) Sample() analytics.Sample {
	values := make(map[analytics.Metric]float64, 5)
	if m.SleepScore != nil {
		values[analytics.MetricSleepScore] = float64(*m.SleepScore)
	}
	if m.HRV != nil {
		values[analytics.MetricHRV] = float64(*m.HRV)
	}
	if m.RecoveryScore != nil {
		values[analytics.MetricRecovery] = float64(*m.RecoveryScore)
	}
	if m.AvgGlucose != nil {
		values[analytics.MetricGlucose] = *m.AvgGlucose
	}
	if m.Temperature != nil {
		values[analytics.MetricTemperature] = *m.Temperature
	}
	return analytics.Sample{Date: m.Date, Values: values}
}

// Samples converts newest-first rows, keeping their order.
func Samples(rows []*HealthMetric) []analytics.Sample {
	out := make([]analytics.Sample, len(rows))
	for i, r := range rows {
		out[i] = r.Sample()
	}
	return out
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
