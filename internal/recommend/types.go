// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/playnext/internal/cache"
	"github.com/tomtom215/playnext/internal/recommend/algorithms"
)

// ErrInvalidParameter is wrapped by every request rejected before the pipeline runs.
var ErrInvalidParameter = algorithms.ErrInvalidParameter

// ErrNoCatalog is returned when no catalog snapshot has been loaded.
var ErrNoCatalog = errors.New("catalog not loaded")

// ModePreference restricts the pool by play mode.
type ModePreference string

// Mode preferences.
const (
	ModeAny        ModePreference = "any"
	ModeSingleOnly ModePreference = "single_only"
	ModeMultiOnly  ModePreference = "multi_only"
	ModeBoth       ModePreference = "both"
)

// ParseModePreference accepts the canonical values and their display forms
// ("Single Only", "multi-only"), case-insensitively. Empty means ModeAny.
func ParseModePreference(s string) (ModePreference, error) {
	m := normalizeMode(s)
	switch m {
	case "":
		return ModeAny, nil
	case ModeAny, ModeSingleOnly, ModeMultiOnly, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown mode preference %q", ErrInvalidParameter, s)
}

func normalizeMode(s string) ModePreference {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	return ModePreference(strings.Join(fields, "_"))
}

// UnmarshalText normalizes display forms. Unknown values are kept so that
// request validation reports them.
func (m *ModePreference) UnmarshalText(text []byte) error {
	*m = normalizeMode(string(text))
	return nil
}

// FilterParams selects a candidate pool from the catalog.
type FilterParams struct {
	// Inclusion filters are OR within a field; empty means no constraint.
	Genres    []string `json:"genres,omitempty" validate:"max=64,dive,required"`
	Platforms []string `json:"platforms,omitempty" validate:"max=64,dive,required"`
	Themes    []string `json:"themes,omitempty" validate:"max=64,dive,required"`

	Mode      ModePreference `json:"mode,omitempty" validate:"omitempty,oneof=any single_only multi_only both"`
	MinRating float64        `json:"min_rating" validate:"gte=0,lte=100"`
	MinCount  int            `json:"min_count" validate:"gte=0"`
}

// SimilarRequest asks for games similar to an anchor within a filtered pool.
type SimilarRequest struct {
	Filter FilterParams `json:"filter"`

	// Anchor names the query game. Empty selects the default anchor.
	Anchor string `json:"anchor,omitempty" validate:"max=512"`

	// Weights defaults to the configured blend when nil.
	Weights *algorithms.Weights `json:"weights,omitempty"`

	// TopK of 0 uses the configured default; values above the configured
	// maximum are clamped.
	TopK int `json:"top_k" validate:"gte=0"`
}

// anchor converts the request field into the two-variant anchor type.
func (r *SimilarRequest) anchor() algorithms.Anchor {
	name := strings.TrimSpace(r.Anchor)
	if name == "" {
		return algorithms.DefaultAnchor()
	}
	return algorithms.ExplicitAnchor(name)
}

// GemsRequest asks for high-quality, low-exposure games.
type GemsRequest struct {
	Filter FilterParams `json:"filter"`

	// Alpha trades quality (1) against obscurity (0). Nil uses the default.
	Alpha *float64 `json:"alpha,omitempty" validate:"omitempty,gte=0,lte=1"`

	// MinGemCount replaces Filter.MinCount for the gems pool. Nil uses the default.
	MinGemCount *int `json:"min_gem_count,omitempty" validate:"omitempty,gte=0"`

	TopK int `json:"top_k" validate:"gte=0"`
}

// RankingMode identifies which ranking produced a response.
type RankingMode string

// Ranking modes.
const (
	RankingSimilar RankingMode = "similar"
	RankingGems    RankingMode = "gems"
)

// Response is a ranked recommendation list.
type Response struct {
	Items    []algorithms.ScoredGame `json:"items"`
	Metadata ResponseMetadata        `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	Mode     RankingMode `json:"mode"`
	PoolSize int         `json:"pool_size"`

	// EmptyPool is set when filtering left nothing to rank. It is not an error.
	EmptyPool bool `json:"empty_pool"`
	TopK      int  `json:"top_k"`

	// TopKClamped is set when the requested top_k exceeded the server maximum
	// and TopK holds that maximum instead.
	TopKClamped bool `json:"top_k_clamped,omitempty"`

	// Similar mode.
	Anchor         string              `json:"anchor,omitempty"`
	AnchorKind     string              `json:"anchor_kind,omitempty"`
	VocabularySize int                 `json:"vocabulary_size"`
	Weights        *algorithms.Weights `json:"weights,omitempty"`
	Reranked       bool                `json:"reranked,omitempty"`
	CacheHit       bool                `json:"cache_hit"`

	// Gems mode.
	Alpha       *float64 `json:"alpha,omitempty"`
	MinGemCount *int     `json:"min_gem_count,omitempty"`

	CatalogGeneration uint64 `json:"catalog_generation"`
	LatencyMS         int64  `json:"latency_ms"`
}

// Distribution is the platform share within a filtered pool.
type Distribution struct {
	Platforms      []PlatformCount `json:"platforms"`
	PoolSize       int             `json:"pool_size"`
	TotalPlatforms int             `json:"total_platforms"`
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	RequestCount int64       `json:"request_count"`
	ErrorCount   int64       `json:"error_count"`
	CacheHits    int64       `json:"cache_hits"`
	CacheMisses  int64       `json:"cache_misses"`
	ModelCache   cache.Stats `json:"model_cache"`
}
