// Package analytics holds the pure computations behind the dashboard:
// cycle phase, goal progress, trends, anomalies and correlations.
package analytics

import (
	"math"
	"time"
)

// Phase is one of the four ordinal menstrual-cycle phases.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
	// PhaseUnknown is returned when the period start lies after the reference time.
	PhaseUnknown Phase = "unknown"
)

const DefaultCycleLength = 28

// CycleStatus is the computed view of a logged period at a point in time.
type CycleStatus struct {
	Phase       Phase     `json:"phase"`
	DayOfCycle  int       `json:"day_of_cycle"`
	CycleLength int       `json:"cycle_length"`
	NextPeriod  time.Time `json:"next_period"`
	Description string    `json:"description"`
}

// DayOfCycle returns the 1-indexed day of the cycle: the start day is day 1.
// A start after now yields a value below 1.
func DayOfCycle(start, now time.Time) int {
	elapsed := float64(now.Sub(start)) / float64(24*time.Hour)
	return int(math.Floor(elapsed)) + 1
}

// PhaseForDay maps a day of cycle to its phase using fixed thresholds.
func PhaseForDay(day int) Phase {
	switch {
	case day < 1:
		return PhaseUnknown
	case day <= 5:
		return PhaseMenstrual
	case day <= 13:
		return PhaseFollicular
	case day <= 16:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

// CyclePhaseAt returns the phase for a period that started at start, seen at now.
func CyclePhaseAt(start, now time.Time) Phase {
	return PhaseForDay(DayOfCycle(start, now))
}

// PredictNextPeriod adds the cycle length (default 28) to the period start.
func PredictNextPeriod(start time.Time, cycleLength int) time.Time {
	return start.AddDate(0, 0, normalizeCycleLength(cycleLength))
}

// Status bundles phase, day, and next-period prediction. cycleLength <= 0 means default.
func Status(start time.Time, cycleLength int, now time.Time) CycleStatus {
	day := DayOfCycle(start, now)
	phase := PhaseForDay(day)
	length := normalizeCycleLength(cycleLength)
	return CycleStatus{
		Phase:       phase,
		DayOfCycle:  day,
		CycleLength: length,
		NextPeriod:  PredictNextPeriod(start, length),
		Description: PhaseDescription(phase),
	}
}

// PhaseDescription returns short guidance for a phase.
func PhaseDescription(phase Phase) string {
	switch phase {
	case PhaseMenstrual:
		return "Period phase - energy may be lower, focus on rest and gentle movement"
	case PhaseFollicular:
		return "Energy building phase - great time for new projects and intense workouts"
	case PhaseOvulation:
		return "Peak energy phase - optimal for high-intensity activities and socializing"
	case PhaseLuteal:
		return "Energy winding down - time for self-care and lighter activities"
	default:
		return "Period start is in the future"
	}
}

func normalizeCycleLength(n int) int {
	if n <= 0 {
		return DefaultCycleLength
	}
	return n
}
