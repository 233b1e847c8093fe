package youtube

// Transcript fetching scrapes the watch page for the
// ytInitialPlayerResponse JSON, picks the best caption track and
// downloads its timedtext XML. Tracks carrying &exp=xpe require a
// browser-issued PoToken and cannot be fetched server-side.

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

const watchUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// playerResponseMarker marks the start of the player response JSON in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// FetchTranscript returns the plain-text transcript of a video, joining
// all caption lines with single spaces. It fails when the video has no
// usable caption tracks (e.g. captions disabled by the uploader).
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	pr, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return "", err
	}
	if pr.Captions == nil {
		if pr.PlayabilityStatus != nil && pr.PlayabilityStatus.Reason != "" {
			return "", fmt.Errorf("captions unavailable: %s", pr.PlayabilityStatus.Reason)
		}
		return "", errors.New("no captions in player response")
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", errors.New("no caption tracks")
	}
	track, ok := pickBestTrack(tracks)
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}
	text, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("empty transcript")
	}
	return text, nil
}

// fetchPlayerResponse downloads the watch page and extracts the
// ytInitialPlayerResponse JSON blob.
func (c *Client) fetchPlayerResponse(ctx context.Context, videoID string) (playerResponse, error) {
	var pr playerResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.youtube.com/watch?v="+videoID, nil)
	if err != nil {
		return pr, err
	}
	req.Header.Set("User-Agent", watchUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return pr, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return pr, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return pr, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return pr, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	if err := json.Unmarshal(raw, &pr); err != nil {
		return pr, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return pr, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track: a manual English
// track first, then any English track, then the first usable track.
func pickBestTrack(tracks []captionTrack) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t, true
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func (c *Client) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", watchUA)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

// parseTimedText extracts plain text from timedtext XML, unescaping the
// HTML entities YouTube embeds in caption lines.
func parseTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}
	var sb strings.Builder
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}

// extractJSON returns the balanced JSON object starting at the first '{'
// of data, honoring strings and escapes.
func extractJSON(data []byte) []byte {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if start < 0 {
			if b == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch b {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[start : i+1]
				}
			}
		}
	}
	return nil
}
