// Bebest Group - Corporate Site and Client Portal Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/bebestgroup/portal/internal/api"
	"github.com/bebestgroup/portal/internal/auth"
	"github.com/bebestgroup/portal/internal/chatlog"
	"github.com/bebestgroup/portal/internal/config"
	"github.com/bebestgroup/portal/internal/gateway"
	"github.com/bebestgroup/portal/internal/identity"
	"github.com/bebestgroup/portal/internal/middleware"
	"github.com/bebestgroup/portal/internal/portal"
	"github.com/bebestgroup/portal/internal/store"
	"github.com/bebestgroup/portal/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Generative content gateway. Without an API key the site still works,
	// AI features fall back to canned responses.
	var gen gateway.Generator
	if cfg.AIEnabled() {
		gemini, err := gateway.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini gateway", "error", err)
			os.Exit(1)
		}
		gen = gemini
		slog.Info("Gemini gateway initialized", "model", cfg.GeminiModel)
	} else {
		gen = gateway.Disabled{}
		slog.Info("AI features disabled (GEMINI_API_KEY not set)")
	}

	chatLog, err := chatlog.New(chatlog.Config{
		Enabled:   cfg.ChatLog.Enabled,
		Dir:       cfg.ChatLog.Dir,
		QueueSize: cfg.ChatLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize chat logger", "error", err)
		os.Exit(1)
	}
	defer chatLog.Close()

	// Initialize services.
	registry := portal.NewRegistry(gen)
	authSvc := auth.NewService(repo, cfg.AuthLatency)

	// Initialize handlers.
	handler := api.NewHandler(registry, authSvc, repo, gen, chatLog, cfg)
	healthHandler := api.NewHealthHandler(repo, cfg.AIEnabled())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	corsOrigins := []string{"*"}
	if cfg.FrontendURL != "" {
		corsOrigins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(corsOrigins))
	r.Use(identity.Middleware(cfg.IsDevelopment()))

	// Public routes.
	healthHandler.RegisterHealth(r)

	handler.RegisterAuthRoutes(r)
	handler.RegisterViewRoutes(r)
	handler.RegisterCatalogRoutes(r)
	handler.RegisterChecklistRoutes(r)
	handler.RegisterChatRoutes(r)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout, the chat socket holds connections open
		IdleTimeout:  120 * time.Second,
	}

	// Start controller sweeper.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	portal.StartSweeper(ctx, registry, repo, cfg.SessionTTL)
	slog.Info("Controller sweeper started", "session_ttl", cfg.SessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
