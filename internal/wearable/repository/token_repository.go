package repository

import (
	"cyclesense-backend/internal/wearable/domain"
)

// TokenRepository persists wearable OAuth tokens, one per user.
type TokenRepository interface {
	Upsert(token *domain.WearableToken) error
	Update(token *domain.WearableToken) error
	FindByUserID(userID string) (*domain.WearableToken, error)
	Delete(userID string) error

	// ListUserIDs returns every user with a linked wearable
	ListUserIDs() ([]string, error)
}
