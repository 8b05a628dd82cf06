package repository

import (
	"testing"
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	"cyclesense-backend/internal/metric/domain"
	"cyclesense-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func setup(t *testing.T) (*gorm.DB, MetricRepository) {
	t.Helper()
	db := testutil.NewDB(t, &authdomain.User{}, &domain.HealthMetric{})
	for _, id := range []string{"alice", "bob"} {
		require.NoError(t, db.Create(&authdomain.User{ID: id, Email: id + "@example.com"}).Error)
	}
	return db, NewGormMetricRepository(db)
}

func TestUpsertByDateMergesPartialDays(t *testing.T) {
	_, repo := setup(t)
	day := time.Date(2025, 4, 2, 17, 45, 0, 0, time.UTC)

	first, err := repo.UpsertByDate(&domain.HealthMetric{
		UserID:     "alice",
		Date:       day,
		SleepScore: intPtr(80),
		HRV:        intPtr(55),
		RawData:    datatypes.JSON(`{"v":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), first.Date)

	second, err := repo.UpsertByDate(&domain.HealthMetric{
		UserID:      "alice",
		Date:        day.Add(3 * time.Hour),
		HRV:         intPtr(60),
		Temperature: floatPtr(36.6),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	rows, err := repo.ListByUser("alice", 30)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got := rows[0]
	assert.Equal(t, 80, *got.SleepScore, "absent incoming field keeps stored value")
	assert.Equal(t, 60, *got.HRV)
	assert.InDelta(t, 36.6, *got.Temperature, 1e-9)
	assert.Nil(t, got.Steps)
	assert.JSONEq(t, `{"v":1}`, string(got.RawData))
}

func TestUpsertByDateSeparatesUsersAndDays(t *testing.T) {
	_, repo := setup(t)
	day := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	for _, m := range []*domain.HealthMetric{
		{UserID: "alice", Date: day, SleepScore: intPtr(70)},
		{UserID: "alice", Date: day.AddDate(0, 0, -1), SleepScore: intPtr(71)},
		{UserID: "bob", Date: day, SleepScore: intPtr(90)},
	} {
		_, err := repo.UpsertByDate(m)
		require.NoError(t, err)
	}

	n, err := repo.CountByUser("alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	rows, err := repo.ListByUser("alice", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Date.After(rows[1].Date), "newest first")
}

func TestUpsertByDateResolvesConflictWithExistingRow(t *testing.T) {
	db, repo := setup(t)
	day := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	// another writer inserted the day first
	require.NoError(t, db.Create(&domain.HealthMetric{
		ID:         "existing",
		UserID:     "alice",
		Date:       day,
		SleepScore: intPtr(75),
		Steps:      intPtr(4000),
	}).Error)

	got, err := repo.UpsertByDate(&domain.HealthMetric{UserID: "alice", Date: day.Add(9 * time.Hour), Steps: intPtr(9000)})
	require.NoError(t, err)
	assert.Equal(t, "existing", got.ID)
	assert.Equal(t, 9000, *got.Steps)
	assert.Equal(t, 75, *got.SleepScore)

	n, err := repo.CountByUser("alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestReportedColumns(t *testing.T) {
	m := &domain.HealthMetric{HRV: intPtr(50), VO2Max: floatPtr(41.5), RawData: datatypes.JSON(`{}`)}
	assert.Equal(t, []string{"hrv", "vo2_max", "raw_data"}, m.ReportedColumns())
	assert.Empty(t, (&domain.HealthMetric{}).ReportedColumns())
}

func TestUniqueIndexRejectsDuplicateDay(t *testing.T) {
	db, repo := setup(t)
	day := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.UpsertByDate(&domain.HealthMetric{UserID: "alice", Date: day, Steps: intPtr(1000)})
	require.NoError(t, err)

	err = db.Create(&domain.HealthMetric{ID: "dup", UserID: "alice", Date: day}).Error
	assert.Error(t, err)
}

func TestListByDateRange(t *testing.T) {
	_, repo := setup(t)
	base := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		_, err := repo.UpsertByDate(&domain.HealthMetric{UserID: "alice", Date: base.AddDate(0, 0, -i), Steps: intPtr(i)})
		require.NoError(t, err)
	}

	rows, err := repo.ListByDateRange("alice", base.AddDate(0, 0, -4), base.AddDate(0, 0, -2).Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, *rows[0].Steps)
	assert.Equal(t, 4, *rows[2].Steps)
}

func TestDeletingUserCascades(t *testing.T) {
	db, repo := setup(t)
	_, err := repo.UpsertByDate(&domain.HealthMetric{UserID: "bob", Date: time.Now(), Steps: intPtr(5)})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&authdomain.User{ID: "bob"}).Error)

	n, err := repo.CountByUser("bob")
	require.NoError(t, err)
	assert.Zero(t, n)
}
