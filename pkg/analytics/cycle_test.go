package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhaseBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		day  int
		want Phase
	}{
		{1, PhaseMenstrual},
		{5, PhaseMenstrual},
		{6, PhaseFollicular},
		{13, PhaseFollicular},
		{14, PhaseOvulation},
		{16, PhaseOvulation},
		{17, PhaseLuteal},
		{40, PhaseLuteal},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			// the start date itself is day 1
			start := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(tt.day - 1))
			assert.Equal(t, tt.day, DayOfCycle(start, now))
			assert.Equal(t, tt.want, CyclePhaseAt(start, now))
		})
	}
}

func TestDayOfCycleFloorsPartialDays(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DayOfCycle(start, start))
	assert.Equal(t, 1, DayOfCycle(start, start.Add(23*time.Hour)))
	assert.Equal(t, 2, DayOfCycle(start, start.Add(24*time.Hour)))
}

func TestFutureStartIsUnknown(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, 3)

	assert.Less(t, DayOfCycle(start, now), 1)
	assert.Equal(t, PhaseUnknown, CyclePhaseAt(start, now))
}

func TestStatusPredictsNextPeriod(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 9)

	st := Status(start, 0, now)
	assert.Equal(t, PhaseFollicular, st.Phase)
	assert.Equal(t, 10, st.DayOfCycle)
	assert.Equal(t, DefaultCycleLength, st.CycleLength)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), st.NextPeriod)
	assert.NotEmpty(t, st.Description)

	st = Status(start, 31, now)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), st.NextPeriod)
}
