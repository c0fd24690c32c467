package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/admitpath/compass/internal/api"
	"github.com/admitpath/compass/internal/cache"
	"github.com/admitpath/compass/internal/catalog"
	"github.com/admitpath/compass/internal/config"
	"github.com/admitpath/compass/internal/events"
	"github.com/admitpath/compass/internal/metrics"
	"github.com/admitpath/compass/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Result cache (optional)
	var results *cache.ResultCache
	if cfg.Redis.Addr != "" {
		rc := cache.NewResultCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.ResultTTL())
		if err := rc.Ping(ctx); err != nil {
			logger.Warn("failed to connect to redis, running without result cache", "error", err)
			_ = rc.Close()
		} else {
			results = rc
			defer rc.Close()
			logger.Info("connected to redis")
		}
	}

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to nats")
		}
	}

	// Catalog
	cat := catalog.New(db, results, eventsClient, metrics.Recorder{}, cfg, logger)
	if err := cat.Refresh(ctx); err != nil {
		logger.Error("initial catalog load failed", "error", err)
		os.Exit(1)
	}
	cat.Start(ctx)
	defer cat.Stop()
	logger.Info("catalog loaded", "programs", cat.Len(), "refresh_interval", cfg.RefreshInterval())

	// API server
	router := api.NewRouter(cat, db, eventsClient, cfg, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}
