package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	cyclerepo "cyclesense-backend/internal/cycle/repository"
	"cyclesense-backend/internal/export/domain"
	goalrepo "cyclesense-backend/internal/goal/repository"
	metricdomain "cyclesense-backend/internal/metric/domain"
	metricrepo "cyclesense-backend/internal/metric/repository"
	"cyclesense-backend/pkg/dateutil"
)

var (
	metricsHeader = []string{
		"Date", "Sleep Score", "Sleep Duration (hours)", "HRV (ms)", "Resting Heart Rate (bpm)",
		"Recovery Score", "Steps", "Avg Glucose (mg/dL)", "Glucose Variability", "Temperature", "VO2 Max",
	}
	cyclesHeader = []string{"Period Start Date", "Period End Date", "Cycle Length", "Flow Intensity", "Symptoms", "Notes"}
	goalsHeader  = []string{
		"Goal Type", "Target Metric", "Target Value", "Baseline Value", "Current Value",
		"Status", "Deadline", "Description", "Created At",
	}
)

type exportUsecase struct {
	metricRepo metricrepo.MetricRepository
	cycleRepo  cyclerepo.CycleRepository
	goalRepo   goalrepo.GoalRepository
}

func NewExportUsecase(metricRepo metricrepo.MetricRepository, cycleRepo cyclerepo.CycleRepository, goalRepo goalrepo.GoalRepository) ExportUsecase {
	return &exportUsecase{
		metricRepo: metricRepo,
		cycleRepo:  cycleRepo,
		goalRepo:   goalRepo,
	}
}

func (u *exportUsecase) Metrics(userID, start, end string, now time.Time) (*domain.File, error) {
	from, to, err := dateRange(start, end, now)
	if err != nil {
		return nil, err
	}

	rows, err := u.metricRepo.ListByDateRange(userID, from, to)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		m := rows[i]
		records = append(records, []string{
			dateutil.Format(m.Date),
			intCell(m.SleepScore),
			floatCell(m.SleepDuration),
			intCell(m.HRV),
			intCell(m.RestingHeartRate),
			intCell(m.RecoveryScore),
			intCell(m.Steps),
			floatCell(m.AvgGlucose),
			floatCell(m.GlucoseVariability),
			floatCell(m.Temperature),
			floatCell(m.VO2Max),
		})
	}

	content, err := render(metricsHeader, records)
	if err != nil {
		return nil, err
	}
	return &domain.File{
		Filename: fmt.Sprintf("health-metrics-%s-to-%s.csv", dateutil.Format(from), dateutil.Format(to)),
		Content:  content,
	}, nil
}

func (u *exportUsecase) Cycles(userID, start, end string, now time.Time) (*domain.File, error) {
	from, to, err := dateRange(start, end, now)
	if err != nil {
		return nil, err
	}

	// start dates may carry a time of day, so include all of the last day
	cycles, err := u.cycleRepo.ListByDateRange(userID, from, to.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(cycles))
	for i := len(cycles) - 1; i >= 0; i-- {
		c := cycles[i]
		flow := ""
		if c.FlowIntensity != nil {
			flow = string(*c.FlowIntensity)
		}
		records = append(records, []string{
			dateutil.Format(c.PeriodStartDate),
			dateutil.FormatPtr(c.PeriodEndDate),
			intCell(c.CycleLength),
			flow,
			strings.Join(c.Symptoms, "; "),
			stringCell(c.Notes),
		})
	}

	content, err := render(cyclesHeader, records)
	if err != nil {
		return nil, err
	}
	return &domain.File{
		Filename: fmt.Sprintf("cycle-tracking-%s-to-%s.csv", dateutil.Format(from), dateutil.Format(to)),
		Content:  content,
	}, nil
}

func (u *exportUsecase) Goals(userID string, now time.Time) (*domain.File, error) {
	goals, err := u.goalRepo.ListByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	records := make([][]string, 0, len(goals))
	for _, g := range goals {
		records = append(records, []string{
			string(g.GoalType),
			g.TargetMetric,
			strconv.FormatFloat(g.TargetValue, 'f', -1, 64),
			floatCell(g.BaselineValue),
			floatCell(g.CurrentValue),
			string(g.Status),
			dateutil.FormatPtr(g.Deadline),
			stringCell(g.Description),
			dateutil.Format(g.CreatedAt),
		})
	}

	content, err := render(goalsHeader, records)
	if err != nil {
		return nil, err
	}
	return &domain.File{
		Filename: fmt.Sprintf("health-goals-%s.csv", dateutil.Format(now)),
		Content:  content,
	}, nil
}

// dateRange resolves the optional bounds to calendar days.
func dateRange(start, end string, now time.Time) (time.Time, time.Time, error) {
	to := metricdomain.DayStart(now)
	if end != "" {
		t, err := dateutil.Parse(end)
		if err != nil {
			return time.Time{}, time.Time{}, &domain.DateError{Field: "endDate"}
		}
		to = metricdomain.DayStart(t)
	}

	from := metricdomain.DayStart(now).AddDate(0, -domain.DefaultRangeMonths, 0)
	if start != "" {
		t, err := dateutil.Parse(start)
		if err != nil {
			return time.Time{}, time.Time{}, &domain.DateError{Field: "startDate"}
		}
		from = metricdomain.DayStart(t)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidRange
	}
	return from, to, nil
}

func render(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func stringCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
