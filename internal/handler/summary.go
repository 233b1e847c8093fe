package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-summarizer/internal/config"
	"github.com/iliyamo/video-summarizer/internal/repository"
	"github.com/iliyamo/video-summarizer/internal/service"
	"github.com/iliyamo/video-summarizer/internal/session"
)

// SummaryHandler bundles dependencies for the summarization and history
// endpoints. All of them require an authenticated user; the JWT
// middleware rejects everything else before these handlers run.
type SummaryHandler struct {
	Cfg          config.Config
	Orchestrator *service.Orchestrator
	Summaries    *repository.SummaryRepo
	Languages    *repository.LanguageRepo
}

func NewSummaryHandler(cfg config.Config, o *service.Orchestrator, s *repository.SummaryRepo, l *repository.LanguageRepo) *SummaryHandler {
	return &SummaryHandler{Cfg: cfg, Orchestrator: o, Summaries: s, Languages: l}
}

type summarizeReq struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

type historyEntry struct {
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// callerUsername reads the username the JWT middleware stored in the
// request context.
func callerUsername(c echo.Context) string {
	if v, ok := c.Get("username").(string); ok {
		return v
	}
	return ""
}

// callerSession rebuilds the session precondition from the verified JWT:
// a request that reached a protected handler corresponds to a session on
// the main screen with the token's username.
func callerSession(c echo.Context) (*session.Session, error) {
	username := callerUsername(c)
	sess := session.New()
	if err := sess.LoginSucceeded(username); err != nil {
		return nil, err
	}
	return sess, nil
}

// Summarize runs the full pipeline for one submitted URL and returns
// {title, channel, summary, thumbnail_url}. Failure kinds map to
// distinct HTTP statuses; none of them leave a history record behind.
func (h *SummaryHandler) Summarize(c echo.Context) error {
	var req summarizeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.URL = strings.TrimSpace(req.URL)
	req.Language = strings.TrimSpace(req.Language)
	if req.URL == "" || req.Language == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url/language required"})
	}

	sess, err := callerSession(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	res, err := h.Orchestrator.SummarizeRequest(c.Request().Context(), sess, req.URL, req.Language)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		case errors.Is(err, service.ErrInvalidURL):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid video url"})
		case errors.Is(err, service.ErrUnknownLanguage):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown language"})
		case errors.Is(err, service.ErrMetadataUnavailable):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "video metadata unavailable"})
		case errors.Is(err, service.ErrTranscriptUnavailable):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "transcript unavailable"})
		case errors.Is(err, service.ErrSummarizationFailed):
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "summarization failed"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "summarize failed"})
		}
	}
	return c.JSON(http.StatusOK, res)
}

// History returns the caller's newest records, bounded at the
// configured limit (5 by default), newest first.
func (h *SummaryHandler) History(c echo.Context) error {
	username := callerUsername(c)
	if username == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	limit := h.Cfg.HistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= limit {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	recs, err := h.Summaries.Recent(ctx, username, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load history failed"})
	}

	out := make([]historyEntry, 0, len(recs))
	for _, r := range recs {
		e := historyEntry{URL: r.URL, Summary: r.Summary, CreatedAt: r.CreatedAt}
		if r.Title.Valid {
			e.Title = r.Title.String
		}
		out = append(out, e)
	}
	return c.JSON(http.StatusOK, echo.Map{"history": out})
}

// Languages lists the selectable output languages in catalog order.
func (h *SummaryHandler) GetLanguages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	langs, err := h.Languages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load languages failed"})
	}
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.Name)
	}
	return c.JSON(http.StatusOK, echo.Map{"languages": names})
}
