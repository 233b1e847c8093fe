// Package queue defines message payloads exchanged over the message broker.
package queue

// SummaryCreatedEvent is published after a summarization request has
// fully succeeded and its history record was written. It carries enough
// information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type SummaryCreatedEvent struct {
    Username    string `json:"username"`
    URL         string `json:"url"`
    VideoID     string `json:"video_id"`
    Title       string `json:"title"`
    Channel     string `json:"channel"`
    Language    string `json:"language"`
    SummaryLen  int    `json:"summary_len"`
    CompletedAt string `json:"completed_at"`
}
