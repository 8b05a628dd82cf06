package repository

import (
	"errors"
	"time"

	"cyclesense-backend/internal/wearable/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormTokenRepository struct {
	db *gorm.DB
}

func NewGormTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

// Upsert inserts the token or replaces the credentials of the user's
// existing one (INSERT ... ON CONFLICT (user_id) DO UPDATE).
func (r *gormTokenRepository) Upsert(token *domain.WearableToken) error {
	now := time.Now()
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	if token.Provider == "" {
		token.Provider = domain.ProviderUltrahuman
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	token.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expires_at", "scope", "provider", "updated_at"}),
	}).Create(token).Error
}

func (r *gormTokenRepository) Update(token *domain.WearableToken) error {
	token.UpdatedAt = time.Now()
	return r.db.Save(token).Error
}

func (r *gormTokenRepository) FindByUserID(userID string) (*domain.WearableToken, error) {
	var token domain.WearableToken
	err := r.db.Where("user_id = ?", userID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepository) Delete(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.WearableToken{}).Error
}

func (r *gormTokenRepository) ListUserIDs() ([]string, error) {
	var ids []string
	if err := r.db.Model(&domain.WearableToken{}).Order("user_id").Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
