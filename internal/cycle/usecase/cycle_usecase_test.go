package usecase

import (
	"testing"
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	"cyclesense-backend/internal/cycle/domain"
	"cyclesense-backend/internal/cycle/dto"
	"cyclesense-backend/internal/cycle/repository"
	"cyclesense-backend/internal/testutil"
	"cyclesense-backend/pkg/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func newUsecase(t *testing.T) CycleUsecase {
	t.Helper()
	db := testutil.NewDB(t, &authdomain.User{}, &domain.CycleTracking{})
	for _, id := range []string{"alice", "bob"} {
		require.NoError(t, db.Create(&authdomain.User{ID: id, Email: id + "@example.com"}).Error)
	}
	return NewCycleUsecase(repository.NewGormCycleRepository(db))
}

func TestCreateAndLatestRoundTrip(t *testing.T) {
	uc := newUsecase(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	_, err := uc.Create("alice", &dto.CreateCycleRequest{PeriodStartDate: "2025-05-10"}, now)
	require.NoError(t, err)

	created, err := uc.Create("alice", &dto.CreateCycleRequest{
		PeriodStartDate: "2025-06-08",
		CycleLength:     intPtr(30),
		FlowIntensity:   strPtr("medium"),
		Symptoms:        []string{"cramps", "headache", "bloating"},
		Notes:           strPtr("tired"),
	}, now)
	require.NoError(t, err)

	latest, err := uc.Latest("alice", now)
	require.NoError(t, err)
	require.NotNil(t, latest)

	assert.Equal(t, created.ID, latest.Cycle.ID)
	assert.True(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC).Equal(latest.Cycle.PeriodStartDate))
	assert.Equal(t, []string{"cramps", "headache", "bloating"}, []string(latest.Cycle.Symptoms))
	assert.Equal(t, domain.FlowMedium, *latest.Cycle.FlowIntensity)
	assert.Equal(t, analytics.PhaseMenstrual, latest.Status.Phase)
	assert.Equal(t, 3, latest.Status.DayOfCycle)
	assert.Equal(t, 30, latest.Status.CycleLength)
	assert.True(t, time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC).Equal(latest.Status.NextPeriod))

	input, err := uc.LatestCycleInput("alice")
	require.NoError(t, err)
	assert.Equal(t, 30, input.CycleLength)
}

func TestLatestWithoutCycles(t *testing.T) {
	uc := newUsecase(t)

	latest, err := uc.Latest("bob", time.Now())
	require.NoError(t, err)
	assert.Nil(t, latest)

	input, err := uc.LatestCycleInput("bob")
	require.NoError(t, err)
	assert.Nil(t, input)

	cycles, err := uc.List("bob")
	require.NoError(t, err)
	assert.NotNil(t, cycles)
	assert.Empty(t, cycles)
}

func TestCreateDefaultsSymptomsToEmpty(t *testing.T) {
	uc := newUsecase(t)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Create("bob", &dto.CreateCycleRequest{PeriodStartDate: "2025-06-01"}, now)
	require.NoError(t, err)

	cycles, err := uc.List("bob")
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.NotNil(t, cycles[0].Symptoms)
	assert.Empty(t, cycles[0].Symptoms)
}

func TestCreateValidation(t *testing.T) {
	uc := newUsecase(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  dto.CreateCycleRequest
		want error
	}{
		{"future start", dto.CreateCycleRequest{PeriodStartDate: "2025-06-11"}, domain.ErrFutureStartDate},
		{"bad date", dto.CreateCycleRequest{PeriodStartDate: "June 1st"}, domain.ErrInvalidDate},
		{"end before start", dto.CreateCycleRequest{PeriodStartDate: "2025-06-05", PeriodEndDate: strPtr("2025-06-01")}, domain.ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create("alice", &tt.req, now)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateOwnership(t *testing.T) {
	uc := newUsecase(t)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	cycle, err := uc.Create("alice", &dto.CreateCycleRequest{PeriodStartDate: "2025-06-01", Symptoms: []string{"a"}}, now)
	require.NoError(t, err)

	_, err = uc.Update("alice", "missing", &dto.UpdateCycleRequest{}, now)
	assert.ErrorIs(t, err, domain.ErrCycleNotFound)

	_, err = uc.Update("bob", cycle.ID, &dto.UpdateCycleRequest{Notes: strPtr("hi")}, now)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	symptoms := []string{"b", "a"}
	updated, err := uc.Update("alice", cycle.ID, &dto.UpdateCycleRequest{
		PeriodEndDate: strPtr("2025-06-05"),
		Symptoms:      &symptoms,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, []string(updated.Symptoms))
	require.NotNil(t, updated.PeriodEndDate)

	cleared, err := uc.Update("alice", cycle.ID, &dto.UpdateCycleRequest{PeriodEndDate: strPtr("")}, now)
	require.NoError(t, err)
	assert.Nil(t, cleared.PeriodEndDate)
}
