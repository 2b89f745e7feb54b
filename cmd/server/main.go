package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/vidstats/vidstats/internal/adapter/ai"
	"github.com/vidstats/vidstats/internal/adapter/store"
	"github.com/vidstats/vidstats/internal/handler"
	"github.com/vidstats/vidstats/internal/middleware"
	"github.com/vidstats/vidstats/internal/schema"
	"github.com/vidstats/vidstats/internal/service"
	"github.com/vidstats/vidstats/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("starting vidstats",
		"port", cfg.Port,
		"model", cfg.MistralModel,
		"schema_contract", schema.Version,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := store.RunMigrations(pgStore.DB()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	mistral, err := ai.NewMistralProvider(ai.MistralConfig{
		BaseURL: cfg.MistralBaseURL,
		APIKey:  cfg.MistralAPIKey,
		Model:   cfg.MistralModel,
	})
	if err != nil {
		slog.Error("failed to configure translator", "error", err)
		os.Exit(1)
	}

	// ── Services ─────────────────────────────────────────────────────────
	answerService := service.NewAnswerService(mistral, pgStore, cfg.TranslateTimeout, cfg.QueryTimeout)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"app":    cfg.AppName,
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1", middleware.AskAuditMiddleware(pgStore))

	askHandler := handler.NewAskHandler(answerService)
	askHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
