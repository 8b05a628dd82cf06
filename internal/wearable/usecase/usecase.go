package usecase

import (
	"context"
	"time"

	"cyclesense-backend/internal/wearable/dto"
	"cyclesense-backend/pkg/ultrahuman"
)

// SyncDays is how many calendar days, today included, a sync pulls.
const SyncDays = 7

// VendorClient is the subset of the Ultrahuman client the sync flow needs.
type VendorClient interface {
	AuthCodeURL(state, redirect string) string
	Exchange(ctx context.Context, code, redirect string) (*ultrahuman.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*ultrahuman.Token, error)
	FetchDay(ctx context.Context, accessToken string, date time.Time) (*ultrahuman.DayPayload, error)
	FetchDayDirect(ctx context.Context, date time.Time, email string) (*ultrahuman.DayPayload, error)
	PartnerConfigured() bool
}

// WearableUsecase defines the wearable linking and sync operations
type WearableUsecase interface {
	AuthorizeURL(userID, redirect string) *dto.AuthorizeResponse
	Connect(ctx context.Context, userID, code, redirect string) (*dto.StatusResponse, error)
	Status(userID string, now time.Time) (*dto.StatusResponse, error)
	Disconnect(userID string) error
	Sync(ctx context.Context, userID string, now time.Time) (*dto.SyncResponse, error)
	ForceRefresh(ctx context.Context, userID string) error
	SyncDirect(ctx context.Context, userID, email string, now time.Time) (*dto.SyncResponse, error)
}
