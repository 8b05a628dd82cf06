package delivery

import (
	"errors"
	"log"
	"net/http"

	authdomain "cyclesense-backend/internal/auth/domain"
	authdto "cyclesense-backend/internal/auth/dto"
	"cyclesense-backend/internal/auth/usecase"
	"cyclesense-backend/pkg/httputil"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.SignupRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	resp, err := h.authUsecase.Signup(&req)
	if err != nil {
		if errors.Is(err, authdomain.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[Auth] signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[Auth] login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.Me(c.GetString(ContextUserID))
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// SyncUser POST /api/users/sync
func (h *AuthHandler) SyncUser(c *gin.Context) {
	var req authdto.SyncUserRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	principal := &authdomain.Principal{
		UserID: c.GetString(ContextUserID),
		Email:  c.GetString(ContextEmail),
	}
	user, err := h.authUsecase.SyncUser(principal, &req)
	if err != nil {
		if errors.Is(err, authdomain.ErrIdentityMismatch) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[Auth] user sync failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
