package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const TraceIDHeader = "X-Trace-ID"

// RequestLogger returns an Echo middleware that writes one structured
// log line per request with a trace id, method, path, status, duration
// and caller identity. Responses at or above 400 log at error level.
// The trace id is taken from the X-Trace-ID header when present so
// client and server logs can be correlated, and is echoed back.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			traceID := req.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = generateTraceID()
			}
			c.Set("trace_id", traceID)

			// Sub-logger with trace_id attached, injected into the
			// request context for handlers that want to log.
			logger := log.With().Str("trace_id", traceID).Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			c.Response().Header().Set(TraceIDHeader, traceID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			var event *zerolog.Event
			if status >= 400 {
				event = logger.Error()
			} else {
				event = logger.Info()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("client_ip", c.RealIP()).
				Str("user", CallerUsername(c)).
				Msg("HTTP request")
			return err
		}
	}
}

// generateTraceID generates a trace-id using random bytes
func generateTraceID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
