package summarizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"google.golang.org/genai"
)

// promptTemplate carries the transcript and the requested output
// language into a single instruction. Keeping the instruction in a
// template makes the language parameterization explicit and testable.
const promptTemplate = `You are a video summarization assistant.
Summarize the following video transcript in {{.Language}}.
Write a concise summary of the key points in a few short paragraphs.
Respond with the summary text only, no preamble and no headings.

Transcript:
{{.Transcript}}`

// maxTranscriptChars bounds the prompt size. Longer transcripts are
// truncated rather than rejected; the tail of a transcript rarely
// changes the summary.
const maxTranscriptChars = 120_000

// Gemini implements Summarizer on top of the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	tmpl   *template.Template
}

// NewGemini builds a Gemini summarizer with the given API key and model
// name (e.g. "gemini-2.0-flash").
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	tmpl, err := template.New("summary").Parse(promptTemplate)
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client, model: model, tmpl: tmpl}, nil
}

// Summarize renders the prompt template and performs one generate call.
func (g *Gemini) Summarize(ctx context.Context, transcript, language string) (string, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", errors.New("empty transcript")
	}
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, map[string]string{
		"Language":   language,
		"Transcript": transcript,
	}); err != nil {
		return "", fmt.Errorf("prompt template: %w", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buf.String()), nil)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", errors.New("gemini returned empty summary")
	}
	return out, nil
}
