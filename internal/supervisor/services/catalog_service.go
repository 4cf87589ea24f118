// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package services

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playnext/internal/catalog"
)

// CatalogSink receives freshly loaded catalog snapshots.
// Satisfied by *recommend.Engine.
type CatalogSink interface {
	SetCatalog(c *catalog.Catalog)
	Ready() bool
}

// CatalogLoadFunc loads a catalog snapshot. catalog.Load in production.
type CatalogLoadFunc func(ctx context.Context, path string, kind catalog.LoaderKind) (*catalog.Catalog, error)

// CatalogReloadConfig holds configuration for the catalog reload service.
type CatalogReloadConfig struct {
	// Path is the dataset file to watch.
	Path string

	// Loader selects the dataset reader.
	Loader catalog.LoaderKind

	// Interval is how often the file is checked. Zero disables reloading.
	Interval time.Duration

	// LoadTimeout bounds a single reload. Default: 5m
	LoadTimeout time.Duration
}

// fileStamp identifies a file version by modification time and size.
type fileStamp struct {
	modTime time.Time
	size    int64
}

// CatalogReloadService polls the dataset file and installs a new catalog
// snapshot whenever it changes. A failed reload is logged and the current
// snapshot stays in place; the same file version is not retried while a
// snapshot is installed. With no snapshot at all, every tick retries.
type CatalogReloadService struct {
	sink   CatalogSink
	load   CatalogLoadFunc
	config CatalogReloadConfig
	logger zerolog.Logger
	name   string

	last fileStamp
}

// NewCatalogReloadService creates a new catalog reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogReloadService(sink CatalogSink, load CatalogLoadFunc, cfg CatalogReloadConfig, logger zerolog.Logger) *CatalogReloadService {
	if load == nil {
		load = catalog.Load
	}
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 5 * time.Minute
	}
	return &CatalogReloadService{
		sink:   sink,
		load:   load,
		config: cfg,
		logger: logger.With().Str("service", "catalog-reload").Str("path", cfg.Path).Logger(),
		name:   "catalog-reload",
	}
}

// Serve implements the suture.Service interface. The file version present
// when Serve starts counts as loaded only if the sink already has a catalog.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("catalog reloading disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.last = fileStamp{}
	if s.sink.Ready() {
		if stamp, err := statFile(s.config.Path); err == nil {
			s.last = stamp
		}
	}

	s.logger.Info().
		Dur("interval", s.config.Interval).
		Str("loader", string(s.config.Loader)).
		Msg("catalog reload service running")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog reload service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.check(ctx)
		}
	}
}

// check reloads the catalog if the file changed since the last attempt.
func (s *CatalogReloadService) check(ctx context.Context) {
	stamp, err := statFile(s.config.Path)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cannot stat catalog file")
		return
	}
	if stamp.same(s.last) && s.sink.Ready() {
		return
	}
	s.last = stamp

	loadCtx, cancel := context.WithTimeout(ctx, s.config.LoadTimeout)
	defer cancel()

	start := time.Now()
	c, err := s.load(loadCtx, s.config.Path, s.config.Loader)
	if err != nil {
		s.logger.Error().Err(err).Msg("catalog reload failed, keeping current snapshot")
		return
	}

	s.sink.SetCatalog(c)
	s.logger.Info().
		Int("games", c.Len()).
		Uint64("generation", c.Generation()).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")
}

func (f fileStamp) same(o fileStamp) bool {
	return f.size == o.size && f.modTime.Equal(o.modTime)
}

func statFile(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}

// String returns the service name for logging.
func (s *CatalogReloadService) String() string {
	return s.name
}
