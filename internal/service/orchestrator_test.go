package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-summarizer/internal/queue"
	"github.com/iliyamo/video-summarizer/internal/session"
	"github.com/iliyamo/video-summarizer/internal/youtube"
)

type fakeResolver struct {
	md    youtube.Metadata
	mdErr error

	transcript    string
	transcriptErr error

	metadataCalls   int
	transcriptCalls int
}

func (f *fakeResolver) FetchMetadata(_ context.Context, _ string) (youtube.Metadata, error) {
	f.metadataCalls++
	return f.md, f.mdErr
}

func (f *fakeResolver) FetchTranscript(_ context.Context, _ string) (string, error) {
	f.transcriptCalls++
	return f.transcript, f.transcriptErr
}

type fakeSummarizer struct {
	out   string
	err   error
	calls int

	gotTranscript string
	gotLanguage   string
}

func (f *fakeSummarizer) Summarize(_ context.Context, transcript, language string) (string, error) {
	f.calls++
	f.gotTranscript = transcript
	f.gotLanguage = language
	return f.out, f.err
}

type appended struct{ username, url, title, summary string }

type fakeHistory struct {
	err     error
	records []appended
}

func (f *fakeHistory) Append(_ context.Context, username, url, title, summary string) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, appended{username, url, title, summary})
	return nil
}

type fakeCatalog struct {
	names []string
	err   error
	calls int
}

func (f *fakeCatalog) Contains(_ context.Context, name string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	for _, n := range f.names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

func authedSession(t *testing.T, username string) *session.Session {
	t.Helper()
	s := session.New()
	require.NoError(t, s.LoginSucceeded(username))
	return s
}

func newTestOrchestrator(r *fakeResolver, s *fakeSummarizer, h *fakeHistory, c *fakeCatalog) *Orchestrator {
	return &Orchestrator{Resolver: r, Summarizer: s, History: h, Languages: c}
}

func TestSummarizeRequestSuccess(t *testing.T) {
	resolver := &fakeResolver{
		md:         youtube.Metadata{Title: "Test Video", Channel: "Test Channel"},
		transcript: "hello world",
	}
	summ := &fakeSummarizer{out: "A short greeting."}
	history := &fakeHistory{}
	catalog := &fakeCatalog{names: []string{"English", "Spanish", "Korean"}}
	o := newTestOrchestrator(resolver, summ, history, catalog)

	res, err := o.SummarizeRequest(context.Background(), authedSession(t, "alice"),
		"https://youtu.be/abc123", "English")
	require.NoError(t, err)

	assert.Equal(t, "abc123", res.VideoID)
	assert.Equal(t, "Test Video", res.Title)
	assert.Equal(t, "Test Channel", res.Channel)
	assert.Equal(t, "A short greeting.", res.Summary)
	assert.Equal(t, youtube.ThumbnailURL("abc123"), res.ThumbnailURL)

	assert.Equal(t, "hello world", summ.gotTranscript)
	assert.Equal(t, "English", summ.gotLanguage)

	require.Len(t, history.records, 1)
	assert.Equal(t, appended{"alice", "https://youtu.be/abc123", "Test Video", "A short greeting."}, history.records[0])
}

func TestSummarizeRequestPublishesEvent(t *testing.T) {
	resolver := &fakeResolver{md: youtube.Metadata{Title: "T", Channel: "C"}, transcript: "text"}
	o := newTestOrchestrator(resolver, &fakeSummarizer{out: "sum"}, &fakeHistory{},
		&fakeCatalog{names: []string{"English"}})

	var got queue.SummaryCreatedEvent
	o.Publish = func(_ context.Context, ev queue.SummaryCreatedEvent) error {
		got = ev
		return nil
	}

	_, err := o.SummarizeRequest(context.Background(), authedSession(t, "bob"),
		"https://youtu.be/xyz", "English")
	require.NoError(t, err)

	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, "xyz", got.VideoID)
	assert.Equal(t, "English", got.Language)
	assert.Equal(t, len("sum"), got.SummaryLen)
}

// A publish failure must not fail the request; the history record is
// already durable at that point.
func TestSummarizeRequestIgnoresPublishError(t *testing.T) {
	resolver := &fakeResolver{md: youtube.Metadata{Title: "T"}, transcript: "text"}
	history := &fakeHistory{}
	o := newTestOrchestrator(resolver, &fakeSummarizer{out: "sum"}, history,
		&fakeCatalog{names: []string{"English"}})
	o.Publish = func(context.Context, queue.SummaryCreatedEvent) error {
		return errors.New("broker down")
	}

	_, err := o.SummarizeRequest(context.Background(), authedSession(t, "bob"),
		"https://youtu.be/xyz", "English")
	require.NoError(t, err)
	assert.Len(t, history.records, 1)
}

// An unauthenticated session is rejected before any collaborator runs.
func TestSummarizeRequestUnauthenticated(t *testing.T) {
	resolver := &fakeResolver{}
	summ := &fakeSummarizer{}
	history := &fakeHistory{}
	catalog := &fakeCatalog{names: []string{"English"}}
	o := newTestOrchestrator(resolver, summ, history, catalog)

	_, err := o.SummarizeRequest(context.Background(), session.New(),
		"https://youtu.be/abc123", "English")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)

	assert.Zero(t, catalog.calls)
	assert.Zero(t, resolver.metadataCalls)
	assert.Zero(t, resolver.transcriptCalls)
	assert.Zero(t, summ.calls)
	assert.Empty(t, history.records)
}

func TestSummarizeRequestInvalidURL(t *testing.T) {
	resolver := &fakeResolver{}
	history := &fakeHistory{}
	o := newTestOrchestrator(resolver, &fakeSummarizer{}, history,
		&fakeCatalog{names: []string{"English"}})

	_, err := o.SummarizeRequest(context.Background(), authedSession(t, "alice"),
		"not a url", "English")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Zero(t, resolver.metadataCalls)
	assert.Empty(t, history.records)
}

func TestSummarizeRequestUnknownLanguage(t *testing.T) {
	resolver := &fakeResolver{}
	history := &fakeHistory{}
	o := newTestOrchestrator(resolver, &fakeSummarizer{}, history,
		&fakeCatalog{names: []string{"English"}})

	_, err := o.SummarizeRequest(context.Background(), authedSession(t, "alice"),
		"https://youtu.be/abc123", "Klingon")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Zero(t, resolver.metadataCalls)
	assert.Empty(t, history.records)
}

// Failure at any stage must leave the history store untouched.
func TestSummarizeRequestNoAppendOnStageFailure(t *testing.T) {
	cases := []struct {
		name     string
		resolver *fakeResolver
		summ     *fakeSummarizer
		want     error
	}{
		{
			name:     "metadata",
			resolver: &fakeResolver{mdErr: errors.New("oembed 404")},
			summ:     &fakeSummarizer{out: "unused"},
			want:     ErrMetadataUnavailable,
		},
		{
			name: "transcript",
			resolver: &fakeResolver{
				md:            youtube.Metadata{Title: "T"},
				transcriptErr: errors.New("captions disabled"),
			},
			summ: &fakeSummarizer{out: "unused"},
			want: ErrTranscriptUnavailable,
		},
		{
			name: "summarizer",
			resolver: &fakeResolver{
				md:         youtube.Metadata{Title: "T"},
				transcript: "text",
			},
			summ: &fakeSummarizer{err: errors.New("model error")},
			want: ErrSummarizationFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			history := &fakeHistory{}
			o := newTestOrchestrator(tc.resolver, tc.summ, history,
				&fakeCatalog{names: []string{"English"}})

			_, err := o.SummarizeRequest(context.Background(), authedSession(t, "alice"),
				"https://youtu.be/abc123", "English")
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, history.records, "history must stay unchanged")
		})
	}
}

func TestSummarizeRequestStorageFailure(t *testing.T) {
	resolver := &fakeResolver{md: youtube.Metadata{Title: "T"}, transcript: "text"}
	history := &fakeHistory{err: errors.New("db gone")}
	o := newTestOrchestrator(resolver, &fakeSummarizer{out: "sum"}, history,
		&fakeCatalog{names: []string{"English"}})

	published := false
	o.Publish = func(context.Context, queue.SummaryCreatedEvent) error {
		published = true
		return nil
	}

	_, err := o.SummarizeRequest(context.Background(), authedSession(t, "alice"),
		"https://youtu.be/abc123", "English")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.False(t, published, "no event without a durable record")
}
