package ultrahuman

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrTokenExpired is returned when the vendor rejects the access token.
	ErrTokenExpired = errors.New("ultrahuman access token expired")
	// ErrReauthorizationRequired means the refresh token is no longer usable
	// and the user has to go through the authorize flow again.
	ErrReauthorizationRequired = errors.New("ultrahuman reauthorization required")
	ErrExchangeFailed          = errors.New("ultrahuman code exchange failed")
	ErrPartnerTokenMissing     = errors.New("ultrahuman partner access token not configured")
	// ErrPartnerTokenRejected is a 401 on the partner endpoint. The static
	// token has no refresh flow, so it needs an operator to replace it.
	ErrPartnerTokenRejected = errors.New("ultrahuman partner access token rejected")
)

// APIError is a non-2xx vendor response other than 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ultrahuman API error (%d): %s", e.Status, e.Message)
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// AccessToken is the static partner token used by FetchDayDirect.
	AccessToken string
	Timeout     time.Duration
}

// Token is the result of an exchange or refresh.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scope        string
}

type Client struct {
	baseURL      string
	oauth        *oauth2.Config
	partnerToken string
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		baseURL: base,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   base + "/oauth/authorize",
				TokenURL:  base + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		partnerToken: cfg.AccessToken,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// AuthorizeBaseURL is the vendor authorize endpoint without query parameters.
func (c *Client) AuthorizeBaseURL() string {
	return c.oauth.Endpoint.AuthURL
}

func (c *Client) ClientID() string {
	return c.oauth.ClientID
}

func (c *Client) RedirectURI() string {
	return c.oauth.RedirectURL
}

// PartnerConfigured reports whether FetchDayDirect has a token to send.
func (c *Client) PartnerConfigured() bool {
	return c.partnerToken != ""
}

// AuthCodeURL builds the authorize redirect. An empty redirect uses the
// configured one.
func (c *Client) AuthCodeURL(state, redirect string) string {
	return c.configFor(redirect).AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code, redirect string) (*Token, error) {
	tok, err := c.configFor(redirect).Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	return fromOAuth(tok, ""), nil
}

// Refresh obtains a new access token. Vendors that do not rotate refresh
// tokens get the old one carried over.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, ErrReauthorizationRequired
	}

	// An empty, already expired token forces the source to hit the token endpoint.
	src := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReauthorizationRequired, err)
	}
	return fromOAuth(tok, refreshToken), nil
}

// FetchDay loads one day of metrics with a user's OAuth access token.
func (c *Client) FetchDay(ctx context.Context, accessToken string, date time.Time) (*DayPayload, error) {
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	return c.getDay(ctx, c.baseURL+"/api/partners/v1/metrics?"+q.Encode(), "Bearer "+accessToken)
}

// FetchDayDirect loads one day of metrics for email using the partner token.
func (c *Client) FetchDayDirect(ctx context.Context, date time.Time, email string) (*DayPayload, error) {
	if c.partnerToken == "" {
		return nil, ErrPartnerTokenMissing
	}
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	q.Set("email", email)
	return c.getDay(ctx, c.baseURL+"/api/v1/partner/daily_metrics?"+q.Encode(), c.partnerToken)
}

func (c *Client) getDay(ctx context.Context, endpoint, authorization string) (*DayPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build ultrahuman request: %w", err)
	}
	req.Header.Set("Authorization", authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ultrahuman request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ultrahuman response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrTokenExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	return DecodeDay(body)
}

func (c *Client) configFor(redirect string) *oauth2.Config {
	if redirect == "" || redirect == c.oauth.RedirectURL {
		return c.oauth
	}
	cfg := *c.oauth
	cfg.RedirectURL = redirect
	return &cfg
}

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func fromOAuth(tok *oauth2.Token, previousRefresh string) *Token {
	t := &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if t.RefreshToken == "" {
		t.RefreshToken = previousRefresh
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		t.Scope = scope
	}
	return t
}

func errorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response"
	}
	return msg
}
