package dto

import "time"

type CallbackRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirect_uri" binding:"omitempty,url"`
}

type SyncDirectRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

type AuthorizeResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type StatusResponse struct {
	Connected bool       `json:"connected"`
	Expired   bool       `json:"expired"`
	Provider  string     `json:"provider,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Scope     string     `json:"scope,omitempty"`
}

type SyncResponse struct {
	Success      bool     `json:"success"`
	MetricsCount int      `json:"metrics_count"`
	DaysFailed   int      `json:"days_failed"`
	Dates        []string `json:"dates"`
}
