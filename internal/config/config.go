// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package config provides layered configuration loading for PlayNext.
//
// Configuration is assembled from three layers, later layers overriding
// earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/playnext/config.yaml)
//  3. Environment variables (CATALOG_PATH, HTTP_PORT, LOG_LEVEL, ...)
//
// Load validates the merged result before returning it.
package config

import (
	"time"

	"github.com/tomtom215/playnext/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Server    ServerConfig    `koanf:"server"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig controls where the game catalog is read from.
type CatalogConfig struct {
	// Path is the dataset CSV file. Both loaders read the same file.
	Path string `koanf:"path"`

	// Loader selects the reader: csv or duckdb.
	// Default: csv
	Loader string `koanf:"loader"`

	// ReloadInterval is how often the file's modification time is checked.
	// Zero disables hot reload.
	// Default: 1m
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	Timeout      time.Duration `koanf:"timeout"` // Per-request handler timeout
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	Environment  string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	DefaultK           int           `koanf:"default_k"`
	MaxK               int           `koanf:"max_k"`
	DefaultWRating     float64       `koanf:"default_w_rating"`
	DefaultWCount      float64       `koanf:"default_w_count"`
	DefaultAlpha       float64       `koanf:"default_alpha"`
	DefaultGemMinCount int           `koanf:"default_gem_min_count"`
	CacheEnabled       bool          `koanf:"cache_enabled"`
	CacheTTL           time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries    int           `koanf:"cache_max_entries"`

	// SimilarityWorkers bounds goroutines per similarity matrix. 0 uses GOMAXPROCS.
	SimilarityWorkers int `koanf:"similarity_workers"`

	// DiversityLambda enables MMR reranking of similar results when in (0, 1).
	DiversityLambda float64 `koanf:"diversity_lambda"`

	SearchLimit  int     `koanf:"search_limit"`
	SearchCutoff float64 `koanf:"search_cutoff"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// LoggingOptions converts the logging section into logging.Config.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	if c.Logging.Format != "" {
		opts.Format = c.Logging.Format
	}
	opts.Caller = c.Logging.Caller
	return opts
}

// Load reads configuration from defaults, an optional config file, and
// environment variables.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
