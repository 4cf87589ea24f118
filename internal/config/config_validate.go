// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var (
	validLoaders    = []string{"csv", "duckdb"}
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console"}
)

// problems accumulates validation failures so that one startup reports
// every bad setting at once.
type problems []error

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

func (p *problems) unitInterval(name string, v float64) {
	p.check(v >= 0 && v <= 1, "%s must be between 0 and 1", name)
}

// Validate checks every section and joins all failures.
func (c *Config) Validate() error {
	var p problems
	c.validateCatalog(&p)
	c.validateServer(&p)
	c.validateRecommend(&p)
	c.validateSecurity(&p)
	c.validateLogging(&p)
	return errors.Join(p...)
}

func (c *Config) validateCatalog(p *problems) {
	cat := c.Catalog
	p.check(strings.TrimSpace(cat.Path) != "", "CATALOG_PATH is required")
	p.check(slices.Contains(validLoaders, cat.Loader), "CATALOG_LOADER must be one of: %s", strings.Join(validLoaders, ", "))
	p.check(cat.ReloadInterval == 0 || cat.ReloadInterval >= time.Second,
		"CATALOG_RELOAD_INTERVAL must be at least 1s, or 0 to disable")
}

func (c *Config) validateServer(p *problems) {
	s := c.Server
	p.check(s.Port >= 1 && s.Port <= 65535, "HTTP_PORT must be between 1 and 65535")
	p.check(s.Timeout > 0, "HTTP_TIMEOUT must be positive")
	p.check(s.ReadTimeout >= 0 && s.WriteTimeout >= 0 && s.IdleTimeout >= 0,
		"HTTP read, write and idle timeouts must not be negative")
}

func (c *Config) validateRecommend(p *problems) {
	r := c.Recommend
	p.check(r.DefaultK >= 1, "RECOMMEND_DEFAULT_K must be positive")
	p.check(r.MaxK >= r.DefaultK, "RECOMMEND_MAX_K must be >= RECOMMEND_DEFAULT_K (%d)", r.DefaultK)
	p.unitInterval("RECOMMEND_DEFAULT_W_RATING", r.DefaultWRating)
	p.unitInterval("RECOMMEND_DEFAULT_W_COUNT", r.DefaultWCount)
	p.unitInterval("RECOMMEND_DEFAULT_ALPHA", r.DefaultAlpha)
	p.check(r.DefaultGemMinCount >= 0, "RECOMMEND_DEFAULT_GEM_MIN_COUNT must not be negative")
	if r.CacheEnabled {
		p.check(r.CacheTTL > 0, "RECOMMEND_CACHE_TTL must be positive when the cache is enabled")
		p.check(r.CacheMaxEntries >= 1, "RECOMMEND_CACHE_MAX_ENTRIES must be positive when the cache is enabled")
	}
	p.check(r.SimilarityWorkers >= 0, "RECOMMEND_SIMILARITY_WORKERS must not be negative")
	p.unitInterval("RECOMMEND_DIVERSITY_LAMBDA", r.DiversityLambda)
	p.check(r.SearchLimit >= 1, "RECOMMEND_SEARCH_LIMIT must be positive")
	p.unitInterval("RECOMMEND_SEARCH_CUTOFF", r.SearchCutoff)
}

// validateSecurity allows wildcard CORS: the API is read-only and
// unauthenticated. Production deployments get a startup warning instead.
func (c *Config) validateSecurity(p *problems) {
	sec := c.Security
	p.check(!slices.ContainsFunc(sec.CORSOrigins, func(o string) bool { return strings.TrimSpace(o) == "" }),
		"CORS_ORIGINS must not contain empty entries")
	if sec.RateLimitDisabled {
		return
	}
	p.check(sec.RateLimitReqs >= minRateLimitRequests && sec.RateLimitReqs <= maxRateLimitRequests,
		"RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	p.check(sec.RateLimitWindow >= minRateLimitWindow && sec.RateLimitWindow <= maxRateLimitWindow,
		"RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
}

func (c *Config) validateLogging(p *problems) {
	p.check(slices.Contains(validLogLevels, c.Logging.Level),
		"LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", "))
	p.check(c.Logging.Format == "" || slices.Contains(validLogFormats, c.Logging.Format),
		"LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", "))
}

// ShouldWarnAboutCORS reports wildcard CORS in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*")
}

// IsProduction reports ENVIRONMENT=production (or prod).
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}
