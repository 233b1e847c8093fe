package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-summarizer/internal/config"
	"github.com/iliyamo/video-summarizer/internal/service"
	"github.com/iliyamo/video-summarizer/internal/youtube"
)

type stubResolver struct {
	md    youtube.Metadata
	mdErr error
	text  string
	txErr error
}

func (s *stubResolver) FetchMetadata(context.Context, string) (youtube.Metadata, error) {
	return s.md, s.mdErr
}
func (s *stubResolver) FetchTranscript(context.Context, string) (string, error) {
	return s.text, s.txErr
}

type stubSummarizer struct {
	out string
	err error
}

func (s *stubSummarizer) Summarize(context.Context, string, string) (string, error) {
	return s.out, s.err
}

type stubHistory struct{ err error }

func (s *stubHistory) Append(context.Context, string, string, string, string) error { return s.err }

type stubCatalog struct{ names []string }

func (s *stubCatalog) Contains(_ context.Context, name string) (bool, error) {
	for _, n := range s.names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func summarizeRequest(t *testing.T, h *SummaryHandler, username, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/summaries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set("username", username)
	}
	require.NoError(t, h.Summarize(c))
	return rec
}

func newTestHandler(o *service.Orchestrator) *SummaryHandler {
	return &SummaryHandler{Cfg: config.Config{HistoryLimit: 5}, Orchestrator: o}
}

func TestSummarizeEndpointSuccess(t *testing.T) {
	o := &service.Orchestrator{
		Resolver:   &stubResolver{md: youtube.Metadata{Title: "Test Video", Channel: "Test Channel"}, text: "hello"},
		Summarizer: &stubSummarizer{out: "A short greeting."},
		History:    &stubHistory{},
		Languages:  &stubCatalog{names: []string{"English"}},
	}

	rec := summarizeRequest(t, newTestHandler(o), "alice",
		`{"url":"https://youtu.be/abc123","language":"English"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var res service.SummaryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "abc123", res.VideoID)
	assert.Equal(t, "Test Video", res.Title)
	assert.Equal(t, "A short greeting.", res.Summary)
}

func TestSummarizeEndpointStatusMapping(t *testing.T) {
	base := func() *service.Orchestrator {
		return &service.Orchestrator{
			Resolver:   &stubResolver{md: youtube.Metadata{Title: "T"}, text: "hello"},
			Summarizer: &stubSummarizer{out: "sum"},
			History:    &stubHistory{},
			Languages:  &stubCatalog{names: []string{"English"}},
		}
	}

	cases := []struct {
		name   string
		mutate func(o *service.Orchestrator)
		body   string
		want   int
	}{
		{
			name: "invalid url", body: `{"url":"https://example.com/x","language":"English"}`,
			mutate: func(*service.Orchestrator) {}, want: http.StatusBadRequest,
		},
		{
			name: "unknown language", body: `{"url":"https://youtu.be/abc123","language":"Klingon"}`,
			mutate: func(*service.Orchestrator) {}, want: http.StatusBadRequest,
		},
		{
			name: "metadata failure", body: `{"url":"https://youtu.be/abc123","language":"English"}`,
			mutate: func(o *service.Orchestrator) {
				o.Resolver = &stubResolver{mdErr: errors.New("oembed 404")}
			},
			want: http.StatusBadGateway,
		},
		{
			name: "transcript failure", body: `{"url":"https://youtu.be/abc123","language":"English"}`,
			mutate: func(o *service.Orchestrator) {
				o.Resolver = &stubResolver{md: youtube.Metadata{Title: "T"}, txErr: errors.New("captions disabled")}
			},
			want: http.StatusBadGateway,
		},
		{
			name: "summarizer failure", body: `{"url":"https://youtu.be/abc123","language":"English"}`,
			mutate: func(o *service.Orchestrator) {
				o.Summarizer = &stubSummarizer{err: errors.New("model error")}
			},
			want: http.StatusBadGateway,
		},
		{
			name: "storage failure", body: `{"url":"https://youtu.be/abc123","language":"English"}`,
			mutate: func(o *service.Orchestrator) {
				o.History = &stubHistory{err: errors.New("db gone")}
			},
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := base()
			tc.mutate(o)
			rec := summarizeRequest(t, newTestHandler(o), "alice", tc.body)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestSummarizeEndpointRequiresUsername(t *testing.T) {
	rec := summarizeRequest(t, newTestHandler(&service.Orchestrator{}), "",
		`{"url":"https://youtu.be/abc123","language":"English"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSummarizeEndpointRejectsEmptyBody(t *testing.T) {
	rec := summarizeRequest(t, newTestHandler(&service.Orchestrator{}), "alice", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
