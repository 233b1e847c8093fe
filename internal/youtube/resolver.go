// Package youtube resolves a submitted video URL into the identifier,
// metadata and transcript the summarization pipeline consumes. Metadata
// comes from the public oEmbed endpoint (title + channel, no API key);
// transcripts come from the caption tracks embedded in the watch page.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Metadata is the subset of video metadata the application displays and
// stores: the title persists on the history record, the channel is
// display-only.
type Metadata struct {
	Title   string `json:"title"`
	Channel string `json:"author_name"`
}

// ErrNoVideoID is returned when no video identifier can be extracted
// from a submitted URL.
var ErrNoVideoID = errors.New("no video id in url")

// Client performs the HTTP calls against YouTube. A zero timeout on the
// embedded http.Client is replaced with a sane default in New.
type Client struct {
	HTTP *http.Client
}

// New returns a Client with the given overall request timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

// videoIDRE matches the id segment in watch, embed, shorts and live paths.
var videoIDRE = regexp.MustCompile(`(?:embed/|shorts/|live/|v/)([A-Za-z0-9_-]+)`)

// idCharsRE validates that an extracted identifier contains only the
// characters YouTube uses for video ids.
var idCharsRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ExtractVideoID derives the canonical video identifier from a URL.
// Supported forms: youtu.be/<id>, youtube.com/watch?v=<id>, /embed/<id>,
// /shorts/<id>, /live/<id>. Anything else fails with ErrNoVideoID; no
// partial work happens on failure.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoVideoID
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ErrNoVideoID
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtu.be":
		id := strings.Trim(strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0], "/")
		if id != "" && idCharsRE.MatchString(id) {
			return id, nil
		}
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if id := u.Query().Get("v"); id != "" && idCharsRE.MatchString(id) {
			return id, nil
		}
		if m := videoIDRE.FindStringSubmatch(u.Path); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", ErrNoVideoID
}

// FetchMetadata returns the video title and channel name via the oEmbed
// endpoint. oEmbed answers for any public video and needs no API key,
// which keeps the resolver deployable anywhere.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (Metadata, error) {
	endpoint := "https://www.youtube.com/oembed?format=json&url=" +
		url.QueryEscape("https://www.youtube.com/watch?v="+videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Metadata{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("oembed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("oembed: status %d", resp.StatusCode)
	}
	var md Metadata
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&md); err != nil {
		return Metadata{}, fmt.Errorf("oembed decode: %w", err)
	}
	if md.Title == "" {
		return Metadata{}, errors.New("oembed: empty title")
	}
	return md, nil
}

// ThumbnailURL returns the stable thumbnail location for a video id.
// Display-only; summarization correctness never depends on it.
func ThumbnailURL(videoID string) string {
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}

// FetchThumbnail downloads the thumbnail image bytes for a video id.
func (c *Client) FetchThumbnail(ctx context.Context, videoID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ThumbnailURL(videoID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("thumbnail: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("thumbnail: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
}
