package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_TIMEOUT", "")
	t.Setenv("ULTRAHUMAN_TIMEOUT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ULTRAHUMAN_SYNC_INTERVAL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, 15*time.Second, cfg.UltrahumanTimeout)
	assert.Equal(t, "https://partner.ultrahuman.com", cfg.UltrahumanBaseURL)
	assert.Zero(t, cfg.UltrahumanSyncInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ULTRAHUMAN_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_BURST", "9")
	t.Setenv("RATE_LIMIT_RPS", "1.5")
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")
	t.Setenv("ULTRAHUMAN_SYNC_INTERVAL", "6h")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.UltrahumanTimeout)
	assert.Equal(t, 9, cfg.RateLimitBurst)
	assert.Equal(t, 1.5, cfg.RateLimitRPS)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, 6*time.Hour, cfg.UltrahumanSyncInterval)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWTSecret:    "secret",
			DBDriver:     "sqlite",
			DatabaseURL:  "file::memory:",
			AIProvider:   "openai",
			OpenAIAPIKey: "sk-test",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"postgres without url", func(c *Config) { c.DBDriver = "postgres"; c.DatabaseURL = "" }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongo" }, "DB_DRIVER"},
		{"openai without key", func(c *Config) { c.OpenAIAPIKey = "" }, "OPENAI_API_KEY"},
		{"gemini without key", func(c *Config) { c.AIProvider = "gemini" }, "GEMINI_API_KEY"},
		{"edge without supabase", func(c *Config) { c.AIProvider = "edge" }, "SUPABASE_URL"},
		{"ollama needs nothing", func(c *Config) { c.AIProvider = "ollama"; c.OpenAIAPIKey = "" }, ""},
		{"unknown provider", func(c *Config) { c.AIProvider = "claude" }, "AI_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
