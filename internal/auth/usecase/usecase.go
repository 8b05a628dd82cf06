package usecase

import (
	authdomain "cyclesense-backend/internal/auth/domain"
	authdto "cyclesense-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	Signup(req *authdto.SignupRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Me(userID string) (*authdomain.User, error)

	// SyncUser creates or refreshes the local copy of an externally managed user.
	SyncUser(principal *authdomain.Principal, req *authdto.SyncUserRequest) (*authdomain.User, error)

	// ValidateToken verifies a bearer token and returns the principal it names.
	ValidateToken(token string) (*authdomain.Principal, error)
}
