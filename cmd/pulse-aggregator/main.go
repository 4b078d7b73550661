package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulsedash/pulse-aggregator/internal/api"
	"github.com/pulsedash/pulse-aggregator/internal/cache"
	"github.com/pulsedash/pulse-aggregator/internal/config"
	"github.com/pulsedash/pulse-aggregator/internal/dashboard"
	"github.com/pulsedash/pulse-aggregator/internal/metrics"
	"github.com/pulsedash/pulse-aggregator/internal/repo"
	"github.com/pulsedash/pulse-aggregator/internal/sources"
	"github.com/pulsedash/pulse-aggregator/internal/utils"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting pulse-aggregator",
		slog.String("address", cfg.Server.Address),
		slog.Bool("forceMock", cfg.Mock.Force))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	var cacheProvider cache.Provider = cache.NewMemoryProvider()
	if cfg.Cache.Enabled && cfg.Cache.Addr != "" {
		provider, err := cache.NewValkeyProvider(cache.ValkeyConfig{
			Addr:         cfg.Cache.Addr,
			Username:     cfg.Cache.Username,
			Password:     cfg.Cache.Password,
			DB:           cfg.Cache.DB,
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
			MaxRetries:   cfg.Cache.MaxRetries,
			TLS:          cfg.Cache.TLS,
		})
		if err != nil {
			logger.Warn("valkey cache unavailable, using in-memory cache", slog.Any("error", err))
		} else {
			cacheProvider = provider
		}
	}
	defer cacheProvider.Close()

	coreClient := repo.NewInsightCoreClient(cfg.Clients.Core.BaseURL, cfg.Clients.Core.Timeout)
	archiveClient := repo.NewArchiveClient(cfg.Clients.Archive.BaseURL, cfg.Clients.Archive.APIKey, cfg.Clients.Archive.Timeout)

	clients := dashboard.Clients{
		Agents:       sources.NewAgentsClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		Routing:      sources.NewRoutingClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		CodeIntel:    sources.NewCodeIntelClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		Savings:      sources.NewSavingsClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		Events:       sources.NewEventsClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		Platform:     sources.NewPlatformClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		Patterns:     sources.NewPatternsClient(logger, coreClient, archiveClient, cfg.Mock.Force),
		Architecture: sources.NewArchitectureClient(logger, coreClient, archiveClient, cfg.Mock.Force),
	}
	orchestrator := dashboard.New(logger, clients)

	handlers := api.NewHandlers(logger, orchestrator, clients, cacheProvider, cfg.Cache.ResponseTTL)
	server, err := api.NewServer(cfg.Server, handlers.Routes())
	if err != nil {
		logger.Error("failed to create HTTP server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		logger.Info("dashboard API listening", slog.String("address", server.Address()))
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("HTTP server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	// Give remaining goroutines time to finish logging
	time.Sleep(100 * time.Millisecond)
	logger.Info("pulse-aggregator stopped")
}
