package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	metricdomain "cyclesense-backend/internal/metric/domain"
	metricrepo "cyclesense-backend/internal/metric/repository"
	"cyclesense-backend/internal/wearable/domain"
	"cyclesense-backend/internal/wearable/dto"
	"cyclesense-backend/internal/wearable/repository"
	"cyclesense-backend/pkg/dateutil"
	"cyclesense-backend/pkg/ultrahuman"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

type wearableUsecase struct {
	tokenRepo  repository.TokenRepository
	metricRepo metricrepo.MetricRepository
	client     VendorClient
}

func NewWearableUsecase(tokenRepo repository.TokenRepository, metricRepo metricrepo.MetricRepository, client VendorClient) WearableUsecase {
	return &wearableUsecase{
		tokenRepo:  tokenRepo,
		metricRepo: metricRepo,
		client:     client,
	}
}

func (u *wearableUsecase) AuthorizeURL(userID, redirect string) *dto.AuthorizeResponse {
	state := uuid.NewString()
	return &dto.AuthorizeResponse{URL: u.client.AuthCodeURL(state, redirect), State: state}
}

func (u *wearableUsecase) Connect(ctx context.Context, userID, code, redirect string) (*dto.StatusResponse, error) {
	tok, err := u.client.Exchange(ctx, code, redirect)
	if err != nil {
		return nil, err
	}

	stored := &domain.WearableToken{
		UserID:       userID,
		Provider:     domain.ProviderUltrahuman,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.ExpiresAt,
		Scope:        tok.Scope,
	}
	if err := u.tokenRepo.Upsert(stored); err != nil {
		return nil, err
	}
	log.Printf("[Sync] linked ultrahuman for user %s", userID)
	return statusOf(stored, time.Now()), nil
}

func (u *wearableUsecase) Status(userID string, now time.Time) (*dto.StatusResponse, error) {
	token, err := u.tokenRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return &dto.StatusResponse{Connected: false}, nil
	}
	return statusOf(token, now), nil
}

func (u *wearableUsecase) Disconnect(userID string) error {
	return u.tokenRepo.Delete(userID)
}

func (u *wearableUsecase) Sync(ctx context.Context, userID string, now time.Time) (*dto.SyncResponse, error) {
	token, err := u.tokenRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrNotConnected
	}

	if token.Expired(now) {
		if token, err = u.refresh(ctx, token); err != nil {
			return nil, err
		}
	}

	days := u.fetchDays(ctx, now, func(ctx context.Context, day time.Time) (*ultrahuman.DayPayload, error) {
		return u.client.FetchDay(ctx, token.AccessToken, day)
	})
	return u.store(userID, days)
}

func (u *wearableUsecase) ForceRefresh(ctx context.Context, userID string) error {
	token, err := u.tokenRepo.FindByUserID(userID)
	if err != nil {
		return err
	}
	if token == nil {
		return domain.ErrNotConnected
	}
	_, err = u.refresh(ctx, token)
	return err
}

func (u *wearableUsecase) SyncDirect(ctx context.Context, userID, email string, now time.Time) (*dto.SyncResponse, error) {
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if !u.client.PartnerConfigured() {
		return nil, ultrahuman.ErrPartnerTokenMissing
	}

	days := u.fetchDays(ctx, now, func(ctx context.Context, day time.Time) (*ultrahuman.DayPayload, error) {
		return u.client.FetchDayDirect(ctx, day, email)
	})
	resp, err := u.store(userID, days)
	if errors.Is(err, ultrahuman.ErrTokenExpired) {
		return nil, ultrahuman.ErrPartnerTokenRejected
	}
	return resp, err
}

func (u *wearableUsecase) refresh(ctx context.Context, token *domain.WearableToken) (*domain.WearableToken, error) {
	tok, err := u.client.Refresh(ctx, token.RefreshToken)
	if err != nil {
		log.Printf("[Sync] token refresh failed for user %s: %v", token.UserID, err)
		return nil, err
	}

	token.AccessToken = tok.AccessToken
	token.RefreshToken = tok.RefreshToken
	token.ExpiresAt = tok.ExpiresAt
	if tok.Scope != "" {
		token.Scope = tok.Scope
	}
	if err := u.tokenRepo.Update(token); err != nil {
		return nil, fmt.Errorf("save refreshed token: %w", err)
	}
	return token, nil
}

type dayResult struct {
	date    time.Time
	payload *ultrahuman.DayPayload
	err     error
}

// fetchDays runs one fetch per day concurrently and waits for all of them.
// Individual failures are kept in the results, never cancelling siblings.
func (u *wearableUsecase) fetchDays(ctx context.Context, now time.Time, fetch func(context.Context, time.Time) (*ultrahuman.DayPayload, error)) []dayResult {
	today := metricdomain.DayStart(now.UTC())
	results := make([]dayResult, SyncDays)

	var g errgroup.Group
	for i := 0; i < SyncDays; i++ {
		i := i
		day := today.AddDate(0, 0, -i)
		g.Go(func() error {
			payload, err := fetch(ctx, day)
			results[i] = dayResult{date: day, payload: payload, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (u *wearableUsecase) store(userID string, days []dayResult) (*dto.SyncResponse, error) {
	resp := &dto.SyncResponse{Success: true, Dates: []string{}}
	expired := false
	var firstErr error

	for _, d := range days {
		if d.err != nil {
			log.Printf("[Sync] failed to fetch %s for user %s: %v", dateutil.Format(d.date), userID, d.err)
			resp.DaysFailed++
			if errors.Is(d.err, ultrahuman.ErrTokenExpired) {
				expired = true
			}
			if firstErr == nil {
				firstErr = d.err
			}
		}
	}
	if expired {
		return nil, ultrahuman.ErrTokenExpired
	}
	// a partial failure is tolerated, a run with nothing fetched is not
	if len(days) > 0 && resp.DaysFailed == len(days) {
		return nil, fmt.Errorf("all %d days failed: %w", len(days), firstErr)
	}

	for _, d := range days {
		if d.err != nil {
			continue
		}
		daily := d.payload.ToDailyMetrics()
		if daily.Empty() {
			continue
		}

		row := toHealthMetric(userID, d.date, daily)
		if len(d.payload.Raw) > 0 && json.Valid(d.payload.Raw) {
			row.RawData = datatypes.JSON(d.payload.Raw)
		}
		if _, err := u.metricRepo.UpsertByDate(row); err != nil {
			return nil, fmt.Errorf("store metrics for %s: %w", dateutil.Format(d.date), err)
		}
		resp.MetricsCount++
		resp.Dates = append(resp.Dates, dateutil.Format(d.date))
	}

	log.Printf("[Sync] user %s: stored %d day(s), %d failed", userID, resp.MetricsCount, resp.DaysFailed)
	return resp, nil
}

func toHealthMetric(userID string, date time.Time, d ultrahuman.DailyMetrics) *metricdomain.HealthMetric {
	return &metricdomain.HealthMetric{
		UserID:             userID,
		Date:               date,
		SleepScore:         d.SleepScore,
		SleepDuration:      d.SleepDuration,
		HRV:                d.HRV,
		RestingHeartRate:   d.RestingHeartRate,
		RecoveryScore:      d.RecoveryScore,
		Steps:              d.Steps,
		AvgGlucose:         d.AvgGlucose,
		GlucoseVariability: d.GlucoseVariability,
		Temperature:        d.Temperature,
		VO2Max:             d.VO2Max,
	}
}

func statusOf(token *domain.WearableToken, now time.Time) *dto.StatusResponse {
	resp := &dto.StatusResponse{
		Connected: true,
		Expired:   token.Expired(now),
		Provider:  token.Provider,
		Scope:     token.Scope,
	}
	if !token.ExpiresAt.IsZero() {
		expires := token.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}
