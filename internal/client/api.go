// Package client implements the interactive terminal client. It renders
// the three screens (login, create-account, main), owns the session
// state machine, and talks to the HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// API is a thin typed wrapper over the server's HTTP surface. It holds
// the current token pair; tokens are cleared on logout.
type API struct {
	BaseURL string
	HTTP    *http.Client

	accessToken  string
	refreshToken string
}

// NewAPI returns an API client for the given base URL, e.g.
// "http://localhost:8080". The long default timeout accommodates the
// summarization call, which waits on transcript fetch plus the model.
func NewAPI(baseURL string) *API {
	return &API{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 3 * time.Minute},
	}
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string { return e.Message }

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	ae, ok := err.(*apiError)
	return ok && ae.Status == status
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.accessToken)
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		if e.Error == "" {
			e.Error = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}
	if out != nil && len(raw) > 0 {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// Register creates a new account. The server issues no tokens here; the
// user signs in afterwards from the login screen.
func (a *API) Register(ctx context.Context, username, password string) error {
	return a.do(ctx, http.MethodPost, "/v1/auth/register",
		map[string]string{"username": username, "password": password}, nil)
}

// Login verifies credentials and stores the returned token pair.
func (a *API) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Access  struct{ Token string } `json:"access"`
		Refresh struct{ Token string } `json:"refresh"`
	}
	err := a.do(ctx, http.MethodPost, "/v1/auth/login",
		map[string]string{"username": username, "password": password}, &resp)
	if err != nil {
		return err
	}
	a.accessToken = resp.Access.Token
	a.refreshToken = resp.Refresh.Token
	return nil
}

// Logout revokes the refresh token server-side and drops both tokens.
func (a *API) Logout(ctx context.Context) error {
	if a.refreshToken != "" {
		_ = a.do(ctx, http.MethodPost, "/v1/auth/logout",
			map[string]string{"refresh_token": a.refreshToken}, nil)
	}
	a.accessToken = ""
	a.refreshToken = ""
	return nil
}

// Languages returns the selectable output languages in catalog order.
func (a *API) Languages(ctx context.Context) ([]string, error) {
	var resp struct {
		Languages []string `json:"languages"`
	}
	if err := a.do(ctx, http.MethodGet, "/v1/languages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Languages, nil
}

// HistoryEntry mirrors one element of the history response.
type HistoryEntry struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// History returns the caller's newest records, newest first.
func (a *API) History(ctx context.Context) ([]HistoryEntry, error) {
	var resp struct {
		History []HistoryEntry `json:"history"`
	}
	if err := a.do(ctx, http.MethodGet, "/v1/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// SummaryResult mirrors the server's successful summarize response.
type SummaryResult struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Summary      string `json:"summary"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Summarize submits one URL/language pair and blocks until the pipeline
// finishes or fails.
func (a *API) Summarize(ctx context.Context, url, language string) (SummaryResult, error) {
	var res SummaryResult
	err := a.do(ctx, http.MethodPost, "/v1/summaries",
		map[string]string{"url": url, "language": language}, &res)
	return res, err
}
