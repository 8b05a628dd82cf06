package api

import (
	"net/http"
	"strings"

	"cyclesense-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the configuration values a browser client needs.
// Only public values leave the server.
type SettingsHandler struct {
	cfg *config.Config
}

func NewSettingsHandler(cfg *config.Config) *SettingsHandler {
	return &SettingsHandler{cfg: cfg}
}

// GetSupabaseConfig GET /api/config/supabase
func (h *SettingsHandler) GetSupabaseConfig(c *gin.Context) {
	if h.cfg.SupabaseURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "identity provider not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":      h.cfg.SupabaseURL,
		"anon_key": h.cfg.SupabaseAnonKey,
	})
}

// GetUltrahumanConfig GET /api/config/ultrahuman
func (h *SettingsHandler) GetUltrahumanConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"configured":    h.cfg.UltrahumanOAuthConfigured(),
		"client_id":     h.cfg.UltrahumanClientID,
		"authorize_url": strings.TrimRight(h.cfg.UltrahumanBaseURL, "/") + "/oauth/authorize",
		"redirect_uri":  h.cfg.UltrahumanRedirectURI,
	})
}
