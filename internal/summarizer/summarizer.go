// Package summarizer turns a video transcript into a natural-language
// summary in a requested output language. The orchestrator treats the
// model call as an opaque text transform: any failure, including the
// model refusing an empty or oversized transcript, surfaces as a plain
// error for the pipeline to classify.
package summarizer

import "context"

// Summarizer maps (transcript, language) to a summary string.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, language string) (string, error)
}
