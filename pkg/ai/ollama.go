package ai

import (
	"context"
	"net/http"
	"strings"
)

// OllamaService implements ForecastService using an Ollama local LLM
type OllamaService struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string, client *http.Client) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaService{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

func (o *OllamaService) Name() string { return string(ProviderOllama) }

// GenerateForecast implements ForecastService
func (o *OllamaService) GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	payload := map[string]interface{}{
		"model":  o.model,
		"system": systemPrompt,
		"prompt": BuildForecastPrompt(req),
		"format": "json",
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.4,
			"num_predict": 800,
		},
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := postJSON(ctx, o.client, "ollama", o.baseURL+"/api/generate", nil, payload, &result); err != nil {
		return nil, err
	}

	return ParseForecastJSON(result.Response)
}
