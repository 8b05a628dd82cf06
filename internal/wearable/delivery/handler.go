package delivery

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"cyclesense-backend/internal/wearable/domain"
	"cyclesense-backend/internal/wearable/dto"
	"cyclesense-backend/internal/wearable/usecase"
	"cyclesense-backend/pkg/httputil"
	"cyclesense-backend/pkg/ultrahuman"

	"github.com/gin-gonic/gin"
)

type WearableHandler struct {
	wearableUsecase usecase.WearableUsecase
}

func NewWearableHandler(wearableUsecase usecase.WearableUsecase) *WearableHandler {
	return &WearableHandler{wearableUsecase: wearableUsecase}
}

// Authorize GET /api/ultrahuman/authorize?redirect_uri=
func (h *WearableHandler) Authorize(c *gin.Context) {
	c.JSON(http.StatusOK, h.wearableUsecase.AuthorizeURL(c.GetString("userID"), c.Query("redirect_uri")))
}

// Callback exchanges the authorization code the frontend received
// POST /api/ultrahuman/callback
func (h *WearableHandler) Callback(c *gin.Context) {
	var req dto.CallbackRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	status, err := h.wearableUsecase.Connect(c.Request.Context(), c.GetString("userID"), req.Code, req.RedirectURI)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// Status GET /api/ultrahuman/status
func (h *WearableHandler) Status(c *gin.Context) {
	status, err := h.wearableUsecase.Status(c.GetString("userID"), time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Disconnect DELETE /api/ultrahuman
func (h *WearableHandler) Disconnect(c *gin.Context) {
	if err := h.wearableUsecase.Disconnect(c.GetString("userID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Sync pulls the last week from the vendor. A rejected access token is
// refreshed and the sync retried once.
// POST /api/ultrahuman/sync
func (h *WearableHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userID")

	resp, err := h.wearableUsecase.Sync(ctx, userID, time.Now())
	if errors.Is(err, ultrahuman.ErrTokenExpired) {
		log.Printf("[Sync] access token rejected for user %s, refreshing", userID)
		resp, err = h.retryAfterRefresh(ctx, userID)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SyncDirect pulls the last week with the partner token, keyed by email.
// The body email overrides the principal's.
// POST /api/ultrahuman/sync-direct
func (h *WearableHandler) SyncDirect(c *gin.Context) {
	var req dto.SyncDirectRequest
	if c.Request.ContentLength > 0 && !httputil.BindJSON(c, &req) {
		return
	}
	email := req.Email
	if email == "" {
		email = c.GetString("email")
	}

	resp, err := h.wearableUsecase.SyncDirect(c.Request.Context(), c.GetString("userID"), email, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WearableHandler) retryAfterRefresh(ctx context.Context, userID string) (*dto.SyncResponse, error) {
	if err := h.wearableUsecase.ForceRefresh(ctx, userID); err != nil {
		return nil, err
	}
	resp, err := h.wearableUsecase.Sync(ctx, userID, time.Now())
	if errors.Is(err, ultrahuman.ErrTokenExpired) {
		return nil, ultrahuman.ErrReauthorizationRequired
	}
	return resp, err
}

func (h *WearableHandler) respondError(c *gin.Context, err error) {
	var apiErr *ultrahuman.APIError
	switch {
	case errors.Is(err, domain.ErrNotConnected):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ultrahuman.ErrReauthorizationRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ultrahuman authorization expired, please reconnect", "code": "reauthorization_required"})
	case errors.Is(err, ultrahuman.ErrExchangeFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailRequired):
		httputil.ValidationError(c, "email", "required")
	case errors.Is(err, ultrahuman.ErrPartnerTokenMissing):
		log.Printf("[Sync] direct sync requested but ULTRAHUMAN_ACCESS_TOKEN is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "direct sync is not configured"})
	case errors.Is(err, ultrahuman.ErrPartnerTokenRejected):
		log.Printf("[Sync] partner token rejected by ultrahuman")
		c.JSON(http.StatusBadRequest, gin.H{"error": "ultrahuman rejected the partner access token", "code": "partner_token_rejected"})
	case errors.As(err, &apiErr):
		log.Printf("[Sync] request failed: %v", err)
		status := http.StatusInternalServerError
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": apiErr.Message, "upstream_status": apiErr.Status})
	default:
		log.Printf("[Sync] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
	}
}
