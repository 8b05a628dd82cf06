package ai

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGeminiService(apiKey string, client *http.Client) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: defaultGeminiBaseURL,
		model:   "gemini-2.5-flash",
		client:  client,
	}
}

// WithBaseURL points the service at another endpoint, for tests and proxies.
func (g *GeminiService) WithBaseURL(baseURL string) *GeminiService {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

func (g *GeminiService) Name() string { return string(ProviderGemini) }

func (g *GeminiService) GenerateForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	endpoint := g.baseURL + "/models/" + g.model + ":generateContent?key=" + url.QueryEscape(g.apiKey)

	payload := map[string]interface{}{
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]string{{"text": systemPrompt}},
		},
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": BuildForecastPrompt(req)}}},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"temperature":      0.4,
		},
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := postJSON(ctx, g.client, "gemini", endpoint, nil, payload, &result); err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}
	return ParseForecastJSON(result.Candidates[0].Content.Parts[0].Text)
}
