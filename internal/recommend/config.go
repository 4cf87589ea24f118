// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"fmt"
	"runtime"
	"time"

	"github.com/tomtom215/playnext/internal/cache"
	"github.com/tomtom215/playnext/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Defaults are applied to request fields left unset.
	Defaults DefaultsConfig `json:"defaults"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Diversity contains parameters for optional MMR reranking.
	Diversity DiversityConfig `json:"diversity"`

	// Cache contains pool model memoization parameters.
	Cache CacheConfig `json:"cache"`

	// Search contains anchor search parameters.
	Search SearchConfig `json:"search"`

	// SimilarityWorkers bounds the goroutines computing one similarity
	// matrix. Zero uses GOMAXPROCS.
	SimilarityWorkers int `json:"similarity_workers"`
}

// DefaultsConfig holds request defaults.
type DefaultsConfig struct {
	// Weights blends rating and rating count in similar mode.
	Weights algorithms.Weights `json:"weights"`

	// Alpha trades quality against obscurity in gems mode.
	Alpha float64 `json:"alpha"`

	// GemMinCount is the rating-count floor for the gems pool.
	GemMinCount int `json:"gem_min_count"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a request leaves top_k at 0.
	DefaultK int `json:"default_k"`

	// MaxK clamps larger top_k values.
	MaxK int `json:"max_k"`
}

// DiversityConfig contains MMR reranking parameters.
type DiversityConfig struct {
	// MMRLambda enables reranking when in (0, 1). 0 or 1 leaves the
	// similarity ranking unchanged.
	MMRLambda float64 `json:"mmr_lambda"`

	// CandidateMultiplier sizes the candidate list handed to MMR as a
	// multiple of top_k.
	CandidateMultiplier int `json:"candidate_multiplier"`
}

// Enabled reports whether MMR reranking is active.
func (d DiversityConfig) Enabled() bool {
	return d.MMRLambda > 0 && d.MMRLambda < 1
}

// CacheConfig contains memoization parameters.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// SearchConfig contains anchor search parameters.
type SearchConfig struct {
	Limit  int     `json:"limit"`
	Cutoff float64 `json:"cutoff"`
}

// DefaultConfig returns the defaults of the original recommender UI:
// equal rating and count weights, alpha 0.5, gem floor of 5 ratings, and
// 10 results.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Weights:     algorithms.Weights{Rating: 0.5, Count: 0.5},
			Alpha:       0.5,
			GemMinCount: 5,
		},
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     100,
		},
		Diversity: DiversityConfig{
			MMRLambda:           0,
			CandidateMultiplier: 3,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        cache.DefaultTTL,
			MaxEntries: cache.DefaultCapacity,
		},
		Search: SearchConfig{
			Limit:  DefaultSearchLimit,
			Cutoff: DefaultSearchCutoff,
		},
		SimilarityWorkers: runtime.GOMAXPROCS(0),
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	w := c.Defaults.Weights
	if w.Rating < 0 || w.Rating > 1 {
		return fmt.Errorf("defaults.weights.w_rating must be in [0, 1], got %f", w.Rating)
	}
	if w.Count < 0 || w.Count > 1 {
		return fmt.Errorf("defaults.weights.w_count must be in [0, 1], got %f", w.Count)
	}
	if c.Defaults.Alpha < 0 || c.Defaults.Alpha > 1 {
		return fmt.Errorf("defaults.alpha must be in [0, 1], got %f", c.Defaults.Alpha)
	}
	if c.Defaults.GemMinCount < 0 {
		return fmt.Errorf("defaults.gem_min_count must be non-negative, got %d", c.Defaults.GemMinCount)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Diversity.MMRLambda < 0 || c.Diversity.MMRLambda > 1 {
		return fmt.Errorf("diversity.mmr_lambda must be in [0, 1], got %f", c.Diversity.MMRLambda)
	}
	if c.Diversity.Enabled() && c.Diversity.CandidateMultiplier < 1 {
		return fmt.Errorf("diversity.candidate_multiplier must be positive, got %d", c.Diversity.CandidateMultiplier)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	if c.Search.Limit < 1 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Search.Cutoff < 0 || c.Search.Cutoff > 1 {
		return fmt.Errorf("search.cutoff must be in [0, 1], got %f", c.Search.Cutoff)
	}

	if c.SimilarityWorkers < 0 {
		return fmt.Errorf("similarity_workers must be non-negative, got %d", c.SimilarityWorkers)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// clampK applies the default for 0 and clamps to MaxK. clamped reports
// that the caller asked for more than MaxK.
func (l LimitsConfig) clampK(k int) (effective int, clamped bool) {
	if k == 0 {
		return l.DefaultK, false
	}
	if k > l.MaxK {
		return l.MaxK, true
	}
	return k, false
}
