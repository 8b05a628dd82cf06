package analytics

import (
	"fmt"
	"math"
	"time"
)

type Insight struct {
	Metric  string         `json:"metric"`
	Trend   TrendDirection `json:"trend"`
	Change  float64        `json:"change"`
	Message string         `json:"message"`
}

// CycleInput is the minimal view of the latest logged period.
type CycleInput struct {
	PeriodStart time.Time
	CycleLength int
}

type trendCopy struct {
	name   string
	metric Metric
	up     string
	down   string
	flat   string
}

var trendCopies = []trendCopy{
	{
		name:   "Sleep Quality",
		metric: MetricSleepScore,
		up:     "Your sleep quality has improved by %.0f%%",
		down:   "Your sleep quality has decreased by %.0f%%",
		flat:   "Your sleep quality remains consistent",
	},
	{
		name:   "Heart Rate Variability",
		metric: MetricHRV,
		up:     "Your HRV is trending upward by %.0f%% - great recovery!",
		down:   "Your HRV has decreased by %.0f%% - consider more rest",
		flat:   "Your HRV is stable",
	},
	{
		name:   "Recovery",
		metric: MetricRecovery,
		up:     "Recovery improving by %.0f%%",
		down:   "Recovery declining by %.0f%%",
		flat:   "Recovery levels are stable",
	},
}

var cycleMessages = map[Phase]string{
	PhaseMenstrual:  "You may experience lower energy during menstruation",
	PhaseFollicular: "Your energy levels typically peak during the follicular phase",
	PhaseOvulation:  "Ovulation phase - optimal time for intense workouts",
	PhaseLuteal:     "Luteal phase - focus on rest and recovery",
}

// BuildInsights turns newest-first samples and the latest cycle (may be nil)
// into human-readable trend insights.
func BuildInsights(samples []Sample, cycle *CycleInput, now time.Time) []Insight {
	insights := []Insight{}

	for _, tc := range trendCopies {
		res := Trend(series(samples, tc.metric))
		if res.Direction == TrendInsufficient {
			continue
		}
		msg := tc.flat
		switch res.Direction {
		case TrendUp:
			msg = fmt.Sprintf(tc.up, math.Abs(res.ChangePercent))
		case TrendDown:
			msg = fmt.Sprintf(tc.down, math.Abs(res.ChangePercent))
		}
		insights = append(insights, Insight{
			Metric:  tc.name,
			Trend:   res.Direction,
			Change:  res.ChangePercent,
			Message: msg,
		})
	}

	if cycle != nil {
		day := DayOfCycle(cycle.PeriodStart, now)
		if day >= 1 && day <= normalizeCycleLength(cycle.CycleLength) {
			insights = append(insights, Insight{
				Metric:  "Cycle Phase",
				Trend:   TrendStable,
				Message: cycleMessages[PhaseForDay(day)],
			})
		}
	}

	return insights
}
