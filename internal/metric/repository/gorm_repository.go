package repository

import (
	"time"

	"cyclesense-backend/internal/metric/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormMetricRepository struct {
	db *gorm.DB
}

// NewGormMetricRepository creates a gorm-backed MetricRepository
func NewGormMetricRepository(db *gorm.DB) MetricRepository {
	return &gormMetricRepository{db: db}
}

func (r *gormMetricRepository) ListByUser(userID string, limit int) ([]*domain.HealthMetric, error) {
	var rows []*domain.HealthMetric
	query := r.db.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormMetricRepository) ListByDateRange(userID string, start, end time.Time) ([]*domain.HealthMetric, error) {
	var rows []*domain.HealthMetric
	err := r.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, domain.DayStart(start), domain.DayStart(end)).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertByDate inserts the day or, when the (user, date) row exists, writes
// only the fields the incoming record carries. The conflict is resolved in a
// single statement so concurrent syncs of the same day never fail.
func (r *gormMetricRepository) UpsertByDate(metric *domain.HealthMetric) (*domain.HealthMetric, error) {
	day := domain.DayStart(metric.Date)
	row := domain.HealthMetric{
		ID:     uuid.New().String(),
		UserID: metric.UserID,
		Date:   day,
	}
	row.Merge(metric)

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns(append(metric.ReportedColumns(), "updated_at")),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var stored domain.HealthMetric
	if err := r.db.Where("user_id = ? AND date = ?", metric.UserID, day).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *gormMetricRepository) CountByUser(userID string) (int64, error) {
	var n int64
	err := r.db.Model(&domain.HealthMetric{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
