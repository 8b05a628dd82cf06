package ai

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiAPIKey string

	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"

	SupabaseURL     string
	SupabaseAnonKey string

	// Timeout bounds every call to the provider
	Timeout time.Duration
}

// NewForecastService creates the ForecastService selected by cfg.Provider.
// Switch AI provider by changing the config; there is no runtime fallback.
func NewForecastService(cfg Config) (ForecastService, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, client), nil

	case ProviderEdge:
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL is required for the edge function provider")
		}
		return NewEdgeFunctionService(cfg.SupabaseURL, cfg.SupabaseAnonKey, client), nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel, client), nil

	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiService(cfg.GeminiAPIKey, client), nil

	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
