package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/video-summarizer/internal/queue"
	"github.com/iliyamo/video-summarizer/internal/session"
	"github.com/iliyamo/video-summarizer/internal/summarizer"
	"github.com/iliyamo/video-summarizer/internal/youtube"
)

// VideoResolver is the external collaborator contract for metadata and
// transcript retrieval. *youtube.Client satisfies it; tests use fakes.
type VideoResolver interface {
	FetchMetadata(ctx context.Context, videoID string) (youtube.Metadata, error)
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

// HistoryStore is the single durable side effect of a request.
// *repository.SummaryRepo satisfies it.
type HistoryStore interface {
	Append(ctx context.Context, username, url, title, summary string) error
}

// LanguageCatalog validates the requested output language.
// *repository.LanguageRepo satisfies it.
type LanguageCatalog interface {
	Contains(ctx context.Context, name string) (bool, error)
}

// SummaryResult is what a successful request returns for display. The
// history record is written before this is returned.
type SummaryResult struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Summary      string `json:"summary"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Orchestrator sequences one summarization request: identifier
// extraction, metadata and transcript retrieval, language-parameterized
// summarization, and exactly one history append once everything before
// it has succeeded. Each request is fully independent; no step mutates
// shared state before the final append.
type Orchestrator struct {
	Resolver   VideoResolver
	Summarizer summarizer.Summarizer
	History    HistoryStore
	Languages  LanguageCatalog

	// FetchTimeout bounds each metadata/transcript call;
	// SummarizeTimeout bounds the model call. A deadline hit is
	// indistinguishable from that stage failing.
	FetchTimeout     time.Duration
	SummarizeTimeout time.Duration

	// Publish emits the post-success event. Best-effort: errors are
	// logged and ignored. Nil disables publishing (tests, CLI-only runs).
	Publish func(ctx context.Context, ev queue.SummaryCreatedEvent) error
}

// SummarizeRequest runs the pipeline for one authenticated submission.
// Preconditions are hard: an unauthenticated session is rejected before
// any collaborator is invoked, as is an unknown language. On any stage
// failure the history store is untouched and the returned error wraps
// the matching sentinel from errors.go.
func (o *Orchestrator) SummarizeRequest(ctx context.Context, sess *session.Session, url, language string) (SummaryResult, error) {
	if err := sess.RequireAuthenticated(); err != nil {
		return SummaryResult{}, err
	}

	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	ok, err := o.Languages.Contains(ctx, language)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return SummaryResult{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}

	md, err := o.fetchMetadata(ctx, videoID)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
	}

	transcript, err := o.fetchTranscript(ctx, videoID)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}

	summary, err := o.summarize(ctx, transcript, language)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}

	// The only durable side effect, and the last step: nothing was
	// written before this point, so failure needs no rollback.
	if err := o.History.Append(ctx, sess.Username(), url, md.Title, summary); err != nil {
		return SummaryResult{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if o.Publish != nil {
		ev := queue.SummaryCreatedEvent{
			Username:    sess.Username(),
			URL:         url,
			VideoID:     videoID,
			Title:       md.Title,
			Channel:     md.Channel,
			Language:    language,
			SummaryLen:  len(summary),
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := o.Publish(ctx, ev); err != nil {
			log.Printf("orchestrator: publish summary.created failed: %v", err)
		}
	}

	return SummaryResult{
		VideoID:      videoID,
		Title:        md.Title,
		Channel:      md.Channel,
		Summary:      summary,
		ThumbnailURL: youtube.ThumbnailURL(videoID),
	}, nil
}

func (o *Orchestrator) fetchMetadata(ctx context.Context, videoID string) (youtube.Metadata, error) {
	ctx, cancel := o.withTimeout(ctx, o.FetchTimeout)
	defer cancel()
	return o.Resolver.FetchMetadata(ctx, videoID)
}

func (o *Orchestrator) fetchTranscript(ctx context.Context, videoID string) (string, error) {
	ctx, cancel := o.withTimeout(ctx, o.FetchTimeout)
	defer cancel()
	return o.Resolver.FetchTranscript(ctx, videoID)
}

func (o *Orchestrator) summarize(ctx context.Context, transcript, language string) (string, error) {
	ctx, cancel := o.withTimeout(ctx, o.SummarizeTimeout)
	defer cancel()
	return o.Summarizer.Summarize(ctx, transcript, language)
}

func (o *Orchestrator) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
