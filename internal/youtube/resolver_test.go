package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"short link", "https://youtu.be/abc123", "abc123"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"extra query params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/abc123?si=share", "abc123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractVideoID(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractVideoIDFailures(t *testing.T) {
	for _, raw := range []string{
		"",
		"not a url",
		"https://example.com/watch?v=abc",
		"https://www.youtube.com/",
		"https://youtu.be/",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ExtractVideoID(raw)
			assert.ErrorIs(t, err, ErrNoVideoID)
		})
	}
}

func TestFetchMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "format=json")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Test Video","author_name":"Test Channel"}`))
	}))
	defer srv.Close()

	c := New(0)
	// Point the client at the stub instead of youtube.com.
	c.HTTP = srv.Client()
	c.HTTP.Transport = rewriteHost(srv)

	md, err := c.FetchMetadata(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Test Video", md.Title)
	assert.Equal(t, "Test Channel", md.Channel)
}

// rewriteHost redirects all outgoing requests to the test server.
func rewriteHost(srv *httptest.Server) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req.URL.Scheme = "http"
		req.URL.Host = srv.Listener.Addr().String()
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", ThumbnailURL("abc123"))
}
