package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-summarizer/internal/config"
	"github.com/iliyamo/video-summarizer/internal/database"
	"github.com/iliyamo/video-summarizer/internal/handler"
	"github.com/iliyamo/video-summarizer/internal/middleware"
	"github.com/iliyamo/video-summarizer/internal/queue"
	"github.com/iliyamo/video-summarizer/internal/repository"
	"github.com/iliyamo/video-summarizer/internal/router"
	"github.com/iliyamo/video-summarizer/internal/service"
	"github.com/iliyamo/video-summarizer/internal/summarizer"
	"github.com/iliyamo/video-summarizer/internal/youtube"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx := context.Background()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	languages := repository.NewLanguageRepo(db)
	summaries := repository.NewSummaryRepo(db)

	if err := languages.Seed(ctx, config.DefaultLanguages); err != nil {
		log.Fatalf("seed languages: %v", err)
	}

	gemini, err := summarizer.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("init summarizer: %v", err)
	}

	orch := &service.Orchestrator{
		Resolver:         youtube.New(cfg.YouTubeTimeout),
		Summarizer:       gemini,
		History:          summaries,
		Languages:        languages,
		FetchTimeout:     cfg.YouTubeTimeout,
		SummarizeTimeout: cfg.SummarizerTimeout,
		Publish:          service.PublishSummaryCreated,
	}

	// Consume summary.created events in the background; the loop
	// reconnects on broker failures and never takes the server down.
	go func() {
		if err := queue.StartSummaryConsumer(); err != nil {
			log.Printf("summary consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient() // nil disables rate limiting and caching

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterSummaries(e, handler.NewSummaryHandler(cfg, orch, summaries, languages), cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
