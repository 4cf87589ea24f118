// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package config

import (
	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/recommend"
	"github.com/tomtom215/playnext/internal/recommend/algorithms"
)

// EngineConfig builds the recommendation engine configuration. Fields the
// recommend section does not expose keep recommend.DefaultConfig values.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	cfg := recommend.DefaultConfig()

	cfg.Defaults.Weights = algorithms.Weights{Rating: r.DefaultWRating, Count: r.DefaultWCount}
	cfg.Defaults.Alpha = r.DefaultAlpha
	cfg.Defaults.GemMinCount = r.DefaultGemMinCount
	cfg.Limits.DefaultK = r.DefaultK
	cfg.Limits.MaxK = r.MaxK
	cfg.Diversity.MMRLambda = r.DiversityLambda
	cfg.Cache.Enabled = r.CacheEnabled
	cfg.Cache.TTL = r.CacheTTL
	cfg.Cache.MaxEntries = r.CacheMaxEntries
	cfg.Search.Limit = r.SearchLimit
	cfg.Search.Cutoff = r.SearchCutoff
	if r.SimilarityWorkers > 0 {
		cfg.SimilarityWorkers = r.SimilarityWorkers
	}

	return cfg
}

// LoaderKind returns the catalog loader selected by the catalog section.
func (c *Config) LoaderKind() catalog.LoaderKind {
	return catalog.LoaderKind(c.Catalog.Loader)
}
