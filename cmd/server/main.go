package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fanfic/internal/auth"
	"fanfic/internal/config"
	"fanfic/internal/handler"
	"fanfic/internal/middleware"
	"fanfic/internal/repository/backend"
	serviceAuth "fanfic/internal/service/auth"
	serviceFanfic "fanfic/internal/service/fanfic"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logOutput, closeLog, err := config.LogWriter(cfg)
	if err != nil {
		log.Fatalf("Failed to setup log file: %v", err)
	}
	defer closeLog()

	logger := config.NewLogger(cfg, logOutput)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"db_driver", cfg.DBDriver,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jwtVerifier, err := newVerifier(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DBDriver, err)
	}
	defer store.Close()

	// SQLite is the local-dev driver; create its tables on boot.
	// Postgres schema is applied explicitly with `fanficctl schema`.
	if store.Driver == config.DriverSQLite {
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}

	logger.Info("database connected", "driver", store.Driver)

	// Services
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(store.Fandoms, store.Stories, store.Chapters)
	fandomService := serviceFanfic.NewFandomService(store.Fandoms, authorizer, logger)
	storyService := serviceFanfic.NewStoryService(store.Stories, authorizer, logger)
	chapterService := serviceFanfic.NewChapterService(store.Chapters, authorizer, logger)

	logger.Info("services initialized")

	handlers := &handler.Handlers{
		Health:   handler.NewHealthHandler(store.Ping, logger),
		Fandoms:  handler.NewFandomHandler(fandomService, logger),
		Stories:  handler.NewStoryHandler(storyService, logger),
		Chapters: handler.NewChapterHandler(chapterService, logger),
	}

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	// Order: CORS → Recovery → RequestLogger → Auth → Routes
	handler := middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		middleware.Auth(jwtVerifier, logger, "/health"),
	)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler.Handler(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// newVerifier prefers the shared secret and falls back to the Supabase JWKS.
func newVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (auth.JWTVerifier, error) {
	if cfg.JWTSecret != "" {
		return auth.NewSecretVerifier(cfg.JWTSecret, logger)
	}
	if cfg.SupabaseJWKSURL == "" {
		return nil, errors.New("either JWT_SECRET or SUPABASE_URL must be set")
	}
	return auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
}
