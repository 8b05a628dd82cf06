package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	CORSOrigin      string
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Persistence
	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string

	// Forecast backend
	AIProvider    string // "openai", "edge", "ollama" or "gemini"
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiApiKey  string
	OllamaBaseURL string
	OllamaModel   string
	AITimeout     time.Duration

	// External identity provider (public values only are exposed to clients)
	SupabaseURL     string
	SupabaseAnonKey string

	// Ultrahuman partner API
	UltrahumanBaseURL      string
	UltrahumanClientID     string
	UltrahumanClientSecret string
	UltrahumanRedirectURI  string
	UltrahumanAccessToken  string
	UltrahumanTimeout      time.Duration
	// UltrahumanSyncInterval enables background sync of linked users when > 0
	UltrahumanSyncInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		CORSOrigin:      getEnv("CORS_ORIGIN", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),

		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		AIProvider:    getEnv("AI_PROVIDER", "openai"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiApiKey:  getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3"),
		AITimeout:     getDuration("AI_TIMEOUT", 60*time.Second),

		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),

		UltrahumanBaseURL:      getEnv("ULTRAHUMAN_BASE_URL", "https://partner.ultrahuman.com"),
		UltrahumanClientID:     getEnv("ULTRAHUMAN_CLIENT_ID", ""),
		UltrahumanClientSecret: getEnv("ULTRAHUMAN_CLIENT_SECRET", ""),
		UltrahumanRedirectURI:  getEnv("ULTRAHUMAN_REDIRECT_URI", ""),
		UltrahumanAccessToken:  getEnv("ULTRAHUMAN_ACCESS_TOKEN", ""),
		UltrahumanTimeout:      getDuration("ULTRAHUMAN_TIMEOUT", 15*time.Second),
		UltrahumanSyncInterval: getDuration("ULTRAHUMAN_SYNC_INTERVAL", 0),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 0.2),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 3),
	}
}

// Validate reports missing required settings so the process can fail at startup
// instead of on the first request that needs them.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}

	switch c.AIProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	case "gemini":
		if c.GeminiApiKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	case "edge":
		if c.SupabaseURL == "" {
			errs = append(errs, errors.New("SUPABASE_URL is required for the edge provider"))
		}
	case "ollama":
	default:
		errs = append(errs, fmt.Errorf("unsupported AI_PROVIDER %q", c.AIProvider))
	}

	return errors.Join(errs...)
}

// UltrahumanOAuthConfigured reports whether the OAuth client credentials are present.
func (c *Config) UltrahumanOAuthConfigured() bool {
	return c.UltrahumanClientID != "" && c.UltrahumanClientSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
