package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// OpenAIService implements ForecastService with the chat completions API.
type OpenAIService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewOpenAIService(apiKey, model, baseURL string, client *http.Client) *OpenAIService {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIService{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (o *OpenAIService) Name() string { return string(ProviderOpenAI) }

func (o *OpenAIService) GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	payload := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": BuildForecastPrompt(req)},
		},
		"response_format":       map[string]string{"type": "json_object"},
		"max_completion_tokens": 1000,
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	if err := postJSON(ctx, o.client, "openai", o.baseURL+"/chat/completions", headers, payload, &result); err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, errors.New("openai returned no choices")
	}
	return ParseForecastJSON(result.Choices[0].Message.Content)
}
