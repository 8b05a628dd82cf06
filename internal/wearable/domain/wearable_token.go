package domain

import (
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
)

const ProviderUltrahuman = "ultrahuman"

// WearableToken holds one user's OAuth credentials for the wearable vendor.
// A user has at most one.
type WearableToken struct {
	ID           string           `json:"id" gorm:"primaryKey"`
	UserID       string           `json:"user_id" gorm:"not null;uniqueIndex"`
	User         *authdomain.User `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Provider     string           `json:"provider" gorm:"not null;default:ultrahuman"`
	AccessToken  string           `json:"-" gorm:"not null"`
	RefreshToken string           `json:"-"`
	ExpiresAt    time.Time        `json:"expires_at"`
	Scope        string           `json:"scope"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Expired reports whether the access token must be refreshed before use.
// A zero expiry means the vendor did not say, so the token is tried as is.
func (t *WearableToken) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(t.ExpiresAt)
}
