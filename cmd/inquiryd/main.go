package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/hafljin/inquiry-automation/config"
	"github.com/hafljin/inquiry-automation/internal/api"
	"github.com/hafljin/inquiry-automation/internal/catalog"
	"github.com/hafljin/inquiry-automation/internal/classifier"
	"github.com/hafljin/inquiry-automation/internal/database"
	"github.com/hafljin/inquiry-automation/internal/diagnostic"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/metrics"
	middlewares "github.com/hafljin/inquiry-automation/internal/middleware"
	"github.com/hafljin/inquiry-automation/internal/ratelimit"
	"github.com/hafljin/inquiry-automation/internal/usage"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting inquiry diagnostic service",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
		"engine", cfg.Diagnostic.Engine,
	)

	// Every rule must resolve to a catalog tier before we serve anything
	if err := catalog.Verify(classifier.TierReferences()); err != nil {
		logger.Fatal("Tier catalog is incomplete", "error", err)
	}

	// Initialize metrics
	metrics.Init(cfg.Metrics.Enabled)
	if cfg.Metrics.Enabled {
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close(ctx)

	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize redis", "error", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	recorder, limiter := backends(rdb, cfg.Server.RateLimitRPM)
	if usage.StartAggregator(ctx, db, recorder, cfg.Usage.FlushInterval) {
		logger.Info("Usage aggregation started", "interval", cfg.Usage.FlushInterval)
	}

	engine, err := diagnostic.NewEngine(cfg)
	if err != nil {
		logger.Fatal("Failed to build diagnostic engine", "error", err)
	}
	svc := diagnostic.NewService(engine,
		diagnostic.WithUsage(recorder),
		diagnostic.WithDelays(diagnostic.DelaysFromConfig(cfg.Diagnostic)),
	)

	var flusher *usage.Flusher
	if db.IsConfigured() {
		flusher = usage.NewFlusher(db, recorder)
	}

	apiHandler := api.NewHandler(svc, api.Options{
		DB:          db,
		Flusher:     flusher,
		Limiter:     limiter,
		AdminSecret: cfg.Admin.AdminSecret,
	}, Version, BuildTime, GitCommit)

	r := newRouter(cfg, apiHandler)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Persist what the last interval counted; process-local counters are never flushed
	if flusher != nil && flusher.Enabled() {
		flusher.FlushOnce(shutdownCtx)
	}

	logger.Info("Server exited")
}

// backends picks Redis-backed counters when a client exists, in-process ones otherwise
func backends(rdb *redis.Client, rpm int) (usage.Recorder, ratelimit.Limiter) {
	if rdb != nil {
		logger.Info("Using Redis for usage counters and rate limits")
		return usage.NewRedisRecorder(rdb), ratelimit.NewRedisLimiter(rdb, rpm)
	}
	logger.Info("REDIS_URL not set; usage counters and rate limits are per instance")
	return usage.NewMemoryRecorder(), ratelimit.NewLocalLimiter(rpm)
}

func newRouter(cfg *config.Config, h *api.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.Logging)
	r.Use(middlewares.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.ReadTimeout))
	r.Use(middlewares.Security)
	r.Use(middlewares.CORS(cfg.Server.CORSAllowedOrigins))

	h.RegisterRoutes(r)
	return r
}

func startMetricsServer(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting metrics server", "address", addr, "path", path)

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "error", err)
	}
}
