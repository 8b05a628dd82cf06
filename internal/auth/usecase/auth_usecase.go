package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	authdomain "cyclesense-backend/internal/auth/domain"
	authdto "cyclesense-backend/internal/auth/dto"
	"cyclesense-backend/internal/auth/repository"
	"cyclesense-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (u *authUsecase) Signup(req *authdto.SignupRequest) (*authdto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	existing, err := u.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Provider:     authdomain.ProviderEmail,
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[Auth] user %s signed up", user.ID)
	return u.issueToken(user)
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	// accounts managed by the identity provider have no local password
	if user == nil || user.PasswordHash == "" {
		return nil, authdomain.ErrInvalidCredentials
	}
	if !repository.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return u.issueToken(user)
}

func (u *authUsecase) Me(userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) SyncUser(principal *authdomain.Principal, req *authdto.SyncUserRequest) (*authdomain.User, error) {
	if req.ID != principal.UserID {
		return nil, authdomain.ErrIdentityMismatch
	}

	user, err := u.userRepo.FindByID(req.ID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &authdomain.User{
			ID:       req.ID,
			Email:    normalizeEmail(req.Email),
			Name:     req.Name,
			Provider: authdomain.ProviderExternal,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
		log.Printf("[Auth] synced new external user %s", user.ID)
		return user, nil
	}

	// email and id are immutable; only the display name follows the provider
	if req.Name != "" && req.Name != user.Name {
		user.Name = req.Name
		if err := u.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, authdomain.ErrInvalidToken
	}

	// self-issued tokens carry user_id, identity provider tokens carry sub
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		userID, _ = claims["sub"].(string)
	}
	if userID == "" {
		return nil, authdomain.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return &authdomain.Principal{UserID: userID, Email: email}, nil
}

func (u *authUsecase) issueToken(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &authdto.TokenResponse{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
