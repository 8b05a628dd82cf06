package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cyclesense-backend/internal/wearable/domain"
	"cyclesense-backend/internal/wearable/dto"
	"cyclesense-backend/pkg/ultrahuman"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedUsecase returns queued Sync results in order.
type scriptedUsecase struct {
	syncErrs     []error
	refreshErr   error
	syncCalls    int
	refreshCalls int
	directEmail  string
	directErr    error
}

func (s *scriptedUsecase) AuthorizeURL(userID, redirect string) *dto.AuthorizeResponse {
	return &dto.AuthorizeResponse{URL: "https://vendor/oauth/authorize?state=x", State: "x"}
}

func (s *scriptedUsecase) Connect(ctx context.Context, userID, code, redirect string) (*dto.StatusResponse, error) {
	if code == "bad" {
		return nil, ultrahuman.ErrExchangeFailed
	}
	return &dto.StatusResponse{Connected: true}, nil
}

func (s *scriptedUsecase) Status(userID string, now time.Time) (*dto.StatusResponse, error) {
	return &dto.StatusResponse{}, nil
}

func (s *scriptedUsecase) Disconnect(userID string) error { return nil }

func (s *scriptedUsecase) Sync(ctx context.Context, userID string, now time.Time) (*dto.SyncResponse, error) {
	i := s.syncCalls
	s.syncCalls++
	if i < len(s.syncErrs) && s.syncErrs[i] != nil {
		return nil, s.syncErrs[i]
	}
	return &dto.SyncResponse{Success: true, MetricsCount: 7, Dates: []string{}}, nil
}

func (s *scriptedUsecase) ForceRefresh(ctx context.Context, userID string) error {
	s.refreshCalls++
	return s.refreshErr
}

func (s *scriptedUsecase) SyncDirect(ctx context.Context, userID, email string, now time.Time) (*dto.SyncResponse, error) {
	s.directEmail = email
	if s.directErr != nil {
		return nil, s.directErr
	}
	return &dto.SyncResponse{Success: true, Dates: []string{}}, nil
}

func newRouter(uc *scriptedUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWearableHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "alice")
		c.Set("email", "alice@example.com")
	})
	r.POST("/ultrahuman/sync", h.Sync)
	r.POST("/ultrahuman/sync-direct", h.SyncDirect)
	r.POST("/ultrahuman/callback", h.Callback)
	r.GET("/ultrahuman/authorize", h.Authorize)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSyncRetriesOnceAfterRefresh(t *testing.T) {
	uc := &scriptedUsecase{syncErrs: []error{ultrahuman.ErrTokenExpired}}

	w := post(newRouter(uc), "/ultrahuman/sync", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, uc.syncCalls)
	assert.Equal(t, 1, uc.refreshCalls)

	var resp dto.SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.MetricsCount)
}

func TestSyncGivesUpAfterSecondRejection(t *testing.T) {
	uc := &scriptedUsecase{syncErrs: []error{ultrahuman.ErrTokenExpired, ultrahuman.ErrTokenExpired}}

	w := post(newRouter(uc), "/ultrahuman/sync", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reauthorization_required")
	assert.Equal(t, 2, uc.syncCalls)
	assert.Equal(t, 1, uc.refreshCalls)
}

func TestSyncRefreshFailure(t *testing.T) {
	uc := &scriptedUsecase{
		syncErrs:   []error{ultrahuman.ErrTokenExpired},
		refreshErr: ultrahuman.ErrReauthorizationRequired,
	}

	w := post(newRouter(uc), "/ultrahuman/sync", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "reauthorization_required")
	assert.Equal(t, 1, uc.syncCalls)
}

func TestSyncNotConnected(t *testing.T) {
	uc := &scriptedUsecase{syncErrs: []error{domain.ErrNotConnected}}

	w := post(newRouter(uc), "/ultrahuman/sync", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, uc.refreshCalls)
}

func TestSyncDirectFallsBackToPrincipalEmail(t *testing.T) {
	uc := &scriptedUsecase{}
	r := newRouter(uc)

	w := post(r, "/ultrahuman/sync-direct", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice@example.com", uc.directEmail)

	w = post(r, "/ultrahuman/sync-direct", `{"email":"ring@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ring@example.com", uc.directEmail)

	w = post(r, "/ultrahuman/sync-direct", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallback(t *testing.T) {
	r := newRouter(&scriptedUsecase{})

	assert.Equal(t, http.StatusOK, post(r, "/ultrahuman/callback", `{"code":"ok"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/ultrahuman/callback", `{"code":"bad"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/ultrahuman/callback", `{}`).Code)
}

func TestSyncUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		uc      *scriptedUsecase
		status  int
		message string
		code    string
	}{
		{
			name:    "partner token not configured",
			path:    "/ultrahuman/sync-direct",
			uc:      &scriptedUsecase{directErr: ultrahuman.ErrPartnerTokenMissing},
			status:  http.StatusInternalServerError,
			message: "direct sync is not configured",
		},
		{
			name:    "partner token rejected",
			path:    "/ultrahuman/sync-direct",
			uc:      &scriptedUsecase{directErr: ultrahuman.ErrPartnerTokenRejected},
			status:  http.StatusBadRequest,
			message: "ultrahuman rejected the partner access token",
			code:    "partner_token_rejected",
		},
		{
			name: "vendor outage on every day",
			path: "/ultrahuman/sync",
			uc: &scriptedUsecase{syncErrs: []error{
				fmt.Errorf("all 7 days failed: %w", &ultrahuman.APIError{Status: http.StatusServiceUnavailable, Message: "maintenance window"}),
			}},
			status:  http.StatusInternalServerError,
			message: "maintenance window",
		},
		{
			name: "vendor rejects the request",
			path: "/ultrahuman/sync-direct",
			uc: &scriptedUsecase{directErr: fmt.Errorf("all 7 days failed: %w",
				&ultrahuman.APIError{Status: http.StatusNotFound, Message: "user not found"})},
			status:  http.StatusBadRequest,
			message: "user not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(newRouter(tt.uc), tt.path, "")
			require.Equal(t, tt.status, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			if tt.code != "" {
				assert.Equal(t, tt.code, body["code"])
			}
			assert.Zero(t, tt.uc.refreshCalls)
		})
	}
}
