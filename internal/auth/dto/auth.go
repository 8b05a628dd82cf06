package dto

import authdomain "cyclesense-backend/internal/auth/domain"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// SyncUserRequest mirrors a user record held by the external identity provider.
type SyncUserRequest struct {
	ID    string `json:"id" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	User        *authdomain.User `json:"user"`
}
