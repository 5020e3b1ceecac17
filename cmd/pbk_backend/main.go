package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/pbk-app/project_bookkeeping_app/internal/core/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/handlers"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
	"github.com/pbk-app/project_bookkeeping_app/internal/platform/config"
	"github.com/pbk-app/project_bookkeeping_app/internal/repositories/docstore"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the document store on the local filesystem
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("Failed to create data directory", slog.String("dir", cfg.DataDir), slog.String("error", err.Error()))
		os.Exit(1)
	}
	store := docstore.NewStore(afero.NewOsFs(), cfg.DataDir)
	logger.Info("Document store initialized", slog.String("dir", cfg.DataDir))

	// Build the service container
	serviceContainer := services.NewServiceContainer(store)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup routes
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
