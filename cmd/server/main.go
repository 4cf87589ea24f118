// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package main is the entry point for the PlayNext server application.
//
// PlayNext recommends video games from a tabular catalog: content-based
// "more like this" rankings over TF-IDF features, "hidden gem" rankings that
// trade quality against exposure, and platform breakdowns of any filtered
// pool.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from defaults, config file, and environment (Koanf v2)
//  2. Logging: Configure zerolog from the logging section
//  3. Catalog: Load the dataset (encoding/csv or DuckDB read_csv)
//  4. Engine: Build the recommendation engine and install the catalog snapshot
//  5. HTTP Server: Chi router with CORS, rate limiting, and Prometheus metrics
//  6. Supervisor: suture tree running the HTTP server, catalog reloader and
//     pool-model sweeper
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (CATALOG_PATH, HTTP_PORT, RECOMMEND_DEFAULT_K, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Catalog Loading
//
// A dataset that fails to load at startup is fatal unless reloading is
// enabled (CATALOG_RELOAD_INTERVAL > 0). With reloading, the server starts
// not ready and installs the catalog once a valid file appears.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Stops the catalog reloader
//
// # Example Usage
//
//	export CATALOG_PATH=./data/games.csv
//	export LOG_FORMAT=console
//	./playnext
//
// Docker:
//
//	docker run -d \
//	  -v $(pwd)/data:/data \
//	  -e CATALOG_RELOAD_INTERVAL=5m \
//	  -p 8765:8765 \
//	  ghcr.io/tomtom215/playnext
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/playnext/internal/api"
	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/config"
	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/metrics"
	"github.com/tomtom215/playnext/internal/recommend"
	"github.com/tomtom215/playnext/internal/supervisor"
	"github.com/tomtom215/playnext/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("catalog_path", cfg.Catalog.Path).
		Str("loader", cfg.Catalog.Loader).
		Dur("reload_interval", cfg.Catalog.ReloadInterval).
		Str("environment", cfg.Server.Environment).
		Msg("Starting PlayNext")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().
			Strs("cors_origins", cfg.Security.CORSOrigins).
			Msg("Wildcard CORS origin in production; set CORS_ORIGINS to the allowed sites")
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := loadInitialCatalog(ctx, cfg, engine); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	router := api.NewRouter(
		api.NewHandler(engine, cfg.Server.Timeout),
		api.NewChiMiddlewareConfig(cfg.Security),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	tree.AddDataService(services.NewCatalogReloadService(engine, catalog.Load, services.CatalogReloadConfig{
		Path:     cfg.Catalog.Path,
		Loader:   cfg.LoaderKind(),
		Interval: cfg.Catalog.ReloadInterval,
	}, logging.Logger()))

	if cfg.Recommend.CacheEnabled {
		tree.AddDataService(services.NewModelSweepService(engine, cfg.Recommend.CacheTTL, logging.Logger()))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadInitialCatalog installs the startup catalog. A load failure is only
// returned when no reloader will retry it.
func loadInitialCatalog(ctx context.Context, cfg *config.Config, engine *recommend.Engine) error {
	c, err := catalog.Load(ctx, cfg.Catalog.Path, cfg.LoaderKind())
	if err != nil {
		if cfg.Catalog.ReloadInterval > 0 {
			logging.Error().Err(err).Msg("Initial catalog load failed; serving not ready until the file is fixed")
			return nil
		}
		return err
	}
	engine.SetCatalog(c)
	return nil
}
