// Package main is the entry point for the LessonPress server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lessonpress/internal/ai"
	"lessonpress/internal/analyzer"
	"lessonpress/internal/blocks"
	"lessonpress/internal/cache"
	"lessonpress/internal/catalog"
	"lessonpress/internal/config"
	"lessonpress/internal/database"
	"lessonpress/internal/engine"
	"lessonpress/internal/handlers"
	"lessonpress/internal/media"
	"lessonpress/internal/middleware"
	"lessonpress/internal/normalize"
	"lessonpress/internal/router"
	"lessonpress/internal/storage"
	"lessonpress/internal/store"
)

func main() {
	// Values already in the environment win over .env.
	if err := config.LoadEnvFile(".env"); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON in production.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the demo lesson (no-op if it already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (page cache, usage counters, upload previews).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)
	usage := cache.NewUsageCounter(valkeyClient)
	previews := cache.NewPreviewStore(valkeyClient, cfg.PreviewTTL)

	// Initialize data stores.
	lessonStore := store.NewLessonStore(db)
	blockStore := store.NewBlockStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional; uploads fall back
	// to previews without it).
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var objects media.ObjectStore
	if storageClient != nil {
		objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, uploads are kept as previews only")
	}

	// Block rendering pipeline.
	cat := catalog.Default()
	gen := blocks.NewGenerator(cat)
	normalizer := normalize.New(normalize.WithGenerator(gen))
	eng := engine.New(engine.WithSiteName(cfg.SiteName), engine.WithGenerator(gen))

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL, ModelImage: cfg.OpenAIImage},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL, ModelImage: cfg.GeminiImage},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	uploader := media.NewUploader(objects, previews, mediaStore)
	blockGenerator := ai.NewBlockGenerator(aiRegistry, cat, ai.WithImageUploader(uploader))

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	ledger := analyzer.DefaultLedger()
	if err := ledger.Validate(cat); err != nil {
		slog.Warn("usage ledger does not match the catalog", "error", err)
	}

	// Per-IP limiter for AI endpoints.
	aiLimiter := middleware.NewRateLimiter(cfg.AIRateLimit, time.Minute)
	defer aiLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Handlers{
		Catalog:  handlers.NewCatalog(cat, normalizer),
		Lessons:  handlers.NewLessons(lessonStore, blockStore, normalizer, blockGenerator, pageCache, usage),
		AI:       handlers.NewAI(aiRegistry, blockGenerator, normalizer),
		Uploads:  handlers.NewUploads(uploader, previews, cfg.MaxUploadBytes()),
		Analysis: handlers.NewAnalysis(cat, ledger, usage),
		Public:   handlers.NewPublic(eng, lessonStore, blockStore, pageCache),
	}, router.Options{
		APIToken:  cfg.APIToken,
		AILimiter: aiLimiter,
	})

	if cfg.APIToken == "" && !cfg.IsDev() {
		slog.Warn("API_TOKEN is empty, authoring endpoints are open")
	}

	// WriteTimeout must accommodate AI endpoints that wait on LLM responses.
	// ReadTimeout covers multipart uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
