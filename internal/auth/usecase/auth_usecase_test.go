package usecase

import (
	"testing"
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	authdto "cyclesense-backend/internal/auth/dto"
	"cyclesense-backend/internal/auth/repository"
	"cyclesense-backend/internal/testutil"
	"cyclesense-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestUsecase(t *testing.T) (AuthUsecase, repository.UserRepository) {
	t.Helper()
	db := testutil.NewDB(t, &authdomain.User{})
	repo := repository.NewUserRepository(db)
	cfg := &config.Config{JWTSecret: testSecret, JWTAccessExpiry: time.Hour}
	return NewAuthUsecase(repo, cfg), repo
}

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestSignupAndLogin(t *testing.T) {
	uc, _ := newTestUsecase(t)

	resp, err := uc.Signup(&authdto.SignupRequest{Email: " Ana@Example.com ", Password: "secret1", Name: "Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.NotEqual(t, "secret1", resp.User.PasswordHash)

	principal, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, principal.UserID)
	assert.Equal(t, "ana@example.com", principal.Email)

	_, err = uc.Signup(&authdto.SignupRequest{Email: "ana@example.com", Password: "other12", Name: "Ana"})
	assert.ErrorIs(t, err, authdomain.ErrEmailTaken)

	login, err := uc.Login(&authdto.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = uc.Login(&authdto.LoginRequest{Email: "ana@example.com", Password: "wrong12"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = uc.Login(&authdto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestValidateTokenAcceptsSubjectClaim(t *testing.T) {
	uc, _ := newTestUsecase(t)

	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "ext-123",
		"email": "ext@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	principal, err := uc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ext-123", principal.UserID)
}

func TestValidateTokenRejects(t *testing.T) {
	uc, _ := newTestUsecase(t)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"expired", signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"wrong algorithm", signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{"user_id": "u1"})},
		{"no subject", signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, authdomain.ErrInvalidToken)
		})
	}
}

func TestSyncUserIsIdempotent(t *testing.T) {
	uc, repo := newTestUsecase(t)
	principal := &authdomain.Principal{UserID: "ext-1", Email: "ext@example.com"}

	user, err := uc.SyncUser(principal, &authdto.SyncUserRequest{ID: "ext-1", Email: "ext@example.com", Name: "First"})
	require.NoError(t, err)
	assert.Equal(t, authdomain.ProviderExternal, user.Provider)

	user, err = uc.SyncUser(principal, &authdto.SyncUserRequest{ID: "ext-1", Email: "changed@example.com", Name: "Second"})
	require.NoError(t, err)
	assert.Equal(t, "Second", user.Name)
	assert.Equal(t, "ext@example.com", user.Email)

	stored, err := repo.FindByID("ext-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", stored.Name)

	_, err = uc.SyncUser(principal, &authdto.SyncUserRequest{ID: "someone-else", Email: "x@example.com"})
	assert.ErrorIs(t, err, authdomain.ErrIdentityMismatch)

	// external users cannot log in with a password
	_, err = uc.Login(&authdto.LoginRequest{Email: "ext@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.Me("missing")
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
}
