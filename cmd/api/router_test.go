package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	authRepo "cyclesense-backend/internal/auth/repository"
	authUsecase "cyclesense-backend/internal/auth/usecase"
	cycledomain "cyclesense-backend/internal/cycle/domain"
	cycleRepo "cyclesense-backend/internal/cycle/repository"
	cycleUsecase "cyclesense-backend/internal/cycle/usecase"
	exportUsecase "cyclesense-backend/internal/export/usecase"
	forecastdomain "cyclesense-backend/internal/forecast/domain"
	forecastRepo "cyclesense-backend/internal/forecast/repository"
	forecastUsecase "cyclesense-backend/internal/forecast/usecase"
	goaldomain "cyclesense-backend/internal/goal/domain"
	goalRepo "cyclesense-backend/internal/goal/repository"
	goalUsecase "cyclesense-backend/internal/goal/usecase"
	metricdomain "cyclesense-backend/internal/metric/domain"
	metricRepo "cyclesense-backend/internal/metric/repository"
	metricUsecase "cyclesense-backend/internal/metric/usecase"
	"cyclesense-backend/internal/testutil"
	wearabledomain "cyclesense-backend/internal/wearable/domain"
	wearableRepo "cyclesense-backend/internal/wearable/repository"
	wearableUsecase "cyclesense-backend/internal/wearable/usecase"
	"cyclesense-backend/pkg/ai"
	"cyclesense-backend/pkg/config"
	"cyclesense-backend/pkg/ultrahuman"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubForecaster struct{}

func (stubForecaster) GenerateForecast(ctx context.Context, req ai.ForecastRequest) (*ai.ForecastResult, error) {
	return &ai.ForecastResult{Forecast: "steady week", Recommendations: []string{"sleep early"}}, nil
}

func (stubForecaster) Name() string { return "stub" }

type testServer struct {
	engine  *gin.Engine
	metrics metricRepo.MetricRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t,
		&authdomain.User{},
		&metricdomain.HealthMetric{},
		&forecastdomain.WellnessForecast{},
		&cycledomain.CycleTracking{},
		&goaldomain.HealthGoal{},
		&wearabledomain.WearableToken{},
	)

	cfg := &config.Config{
		GinMode:                "test",
		JWTSecret:              "router-test-secret",
		JWTAccessExpiry:        time.Hour,
		UltrahumanBaseURL:      "https://partner.example.com/",
		UltrahumanClientID:     "uh-client",
		UltrahumanClientSecret: "uh-secret",
		UltrahumanRedirectURI:  "https://app.example.com/cb",
		SupabaseURL:            "https://project.supabase.co",
		SupabaseAnonKey:        "anon",
		RateLimitRPS:           0.001,
		RateLimitBurst:         1,
	}

	metrics := metricRepo.NewGormMetricRepository(db)
	cycles := cycleRepo.NewGormCycleRepository(db)
	goals := goalRepo.NewGormGoalRepository(db)
	cycleUc := cycleUsecase.NewCycleUsecase(cycles)

	h := NewHandler(cfg, Usecases{
		Auth:     authUsecase.NewAuthUsecase(authRepo.NewUserRepository(db), cfg),
		Metric:   metricUsecase.NewMetricUsecase(metrics, cycleUc),
		Forecast: forecastUsecase.NewForecastUsecase(forecastRepo.NewGormForecastRepository(db), metrics, cycleUc, stubForecaster{}),
		Cycle:    cycleUc,
		Goal:     goalUsecase.NewGoalUsecase(goals),
		Wearable: wearableUsecase.NewWearableUsecase(wearableRepo.NewGormTokenRepository(db), metrics, ultrahuman.NewClient(ultrahuman.Config{BaseURL: cfg.UltrahumanBaseURL})),
		Export:   exportUsecase.NewExportUsecase(metrics, cycles, goals),
	})
	return &testServer{engine: h.Engine(), metrics: metrics}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// signup returns the access token and user id of a new account.
func (s *testServer) signup(t *testing.T, email string) (string, string) {
	t.Helper()
	w := s.do(http.MethodPost, "/api/auth/signup", "", `{"email":"`+email+`","password":"secret123","name":"Test"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken, resp.User.ID
}

func TestHealthAndPublicConfig(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/health", "", "").Code)

	w := s.do(http.MethodGet, "/api/config/ultrahuman", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"client_id":"uh-client"`)
	assert.Contains(t, w.Body.String(), `"authorize_url":"https://partner.example.com/oauth/authorize"`)
	assert.NotContains(t, w.Body.String(), "uh-secret")

	w = s.do(http.MethodGet, "/api/config/supabase", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anon_key":"anon"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/metrics/anyone", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/metrics/anyone", "not-a-jwt", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/ultrahuman/sync", "", "").Code)
}

func TestOtherUsersMetricsAreForbidden(t *testing.T) {
	s := newTestServer(t)
	aliceToken, aliceID := s.signup(t, "alice@example.com")
	bobToken, _ := s.signup(t, "bob@example.com")

	hrv := 61
	_, err := s.metrics.UpsertByDate(&metricdomain.HealthMetric{UserID: aliceID, Date: time.Now(), HRV: &hrv})
	require.NoError(t, err)

	for _, path := range []string{
		"/api/metrics/" + aliceID,
		"/api/metrics/" + aliceID + "/insights",
		"/api/forecast/" + aliceID,
		"/api/cycles/" + aliceID + "/latest",
		"/api/goals/" + aliceID,
		"/api/export/metrics/" + aliceID,
	} {
		w := s.do(http.MethodGet, path, bobToken, "")
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.JSONEq(t, `{"error":"forbidden"}`, w.Body.String(), path)
	}

	w := s.do(http.MethodGet, "/api/metrics/"+aliceID, aliceToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hrv":61`)
}

func TestByIDOwnershipChecksExistenceFirst(t *testing.T) {
	s := newTestServer(t)
	aliceToken, _ := s.signup(t, "alice@example.com")
	bobToken, _ := s.signup(t, "bob@example.com")

	w := s.do(http.MethodPost, "/api/goals", aliceToken, `{"goal_type":"improve","target_metric":"hrv","target_value":70}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var goal struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPatch, "/api/goals/missing", bobToken, `{}`).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, "/api/goals/"+goal.ID, bobToken, `{}`).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/goals/"+goal.ID, bobToken, "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/goals/"+goal.ID, aliceToken, "").Code)
}

func TestForecastGenerateIsThrottled(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "alice@example.com")

	// no metrics yet, but the request still spends a token
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/forecast/generate", token, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/api/forecast/generate", token, "").Code)
}

func TestSyncWithoutLinkIsNotFound(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signup(t, "alice@example.com")

	w := s.do(http.MethodPost, "/api/ultrahuman/sync", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/metrics/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
