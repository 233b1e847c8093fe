package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/video-summarizer/internal/config"
	"github.com/iliyamo/video-summarizer/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/video-summarizer/internal/middleware" // import middleware for JWT authentication and logging
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check,
// which load balancers or monitoring systems can use to verify that the
// service is up and running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: creating an
	// account, signing in, rotating a refresh token, and logging out
	// with a refresh token in the body.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.  All handlers registered
	// on this group execute the JWTAuth middleware before being invoked.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterSummaries registers the summarization endpoints on the
// protected /v1 group.  The language catalog response is cached (it is
// append-only), while submissions and history are always served fresh.
func RegisterSummaries(e *echo.Echo, s *handler.SummaryHandler, jwtSecret string, rdb *redis.Client) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth.POST("/summaries", s.Summarize)
	auth.GET("/history", s.History)
	auth.GET("/languages", s.GetLanguages, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
}
