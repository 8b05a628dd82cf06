package domain

import "time"

const (
	ProviderEmail    = "email"
	ProviderExternal = "external"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-"` // only set for self-hosted sign-up
	Name         string    `json:"name"`
	Provider     string    `json:"provider" gorm:"default:email"` // "email" or "external"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity behind a request.
type Principal struct {
	UserID string
	Email  string
}
