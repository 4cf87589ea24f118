// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/playnext/internal/cache"
	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/metrics"
	"github.com/tomtom215/playnext/internal/recommend/algorithms"
	"github.com/tomtom215/playnext/internal/recommend/features"
)

// PoolModel holds the derived structures for one pool: its TF-IDF matrix,
// vocabulary and pairwise similarity. It is read-only once built.
type PoolModel struct {
	Matrix     *features.Matrix
	Vocabulary *features.Vocabulary
	Similarity *algorithms.SimilarityMatrix
	BuiltAt    time.Time
}

// BuildPoolModel runs tokenize, vectorize and similarity over the pool,
// checking ctx between stages.
func BuildPoolModel(ctx context.Context, pool *catalog.Pool, workers int) (*PoolModel, error) {
	start := time.Now()
	m, vocab := features.Build(pool)
	metrics.RecordStage("vectorize", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}

	start = time.Now()
	sims, err := algorithms.CosineSimilarity(ctx, m, workers)
	if err != nil {
		return nil, fmt.Errorf("similarity: %w", err)
	}
	metrics.RecordStage("similarity", time.Since(start))
	metrics.RecordPoolModel(pool.Len(), vocab.Len())

	return &PoolModel{
		Matrix:     m,
		Vocabulary: vocab,
		Similarity: sims,
		BuiltAt:    time.Now(),
	}, nil
}

// modelKey identifies a pool model. The fingerprint covers every row's
// features and scores, so pools that share names but not rows get
// separate models.
type modelKey struct {
	Generation  uint64 `json:"generation"`
	Fingerprint uint64 `json:"fingerprint"`
	Size        int    `json:"size"`
	MinDF       int    `json:"min_df"`
}

// modelCache memoizes pool models by pool composition.
type modelCache struct {
	lru *cache.LRUCache[*PoolModel]
}

func newModelCache(cfg CacheConfig) *modelCache {
	return &modelCache{lru: cache.NewLRUCache[*PoolModel](cfg.MaxEntries, cfg.TTL)}
}

func (c *modelCache) key(generation uint64, pool *catalog.Pool) string {
	return cache.GenerateKey("pool_model", modelKey{
		Generation:  generation,
		Fingerprint: pool.Fingerprint(),
		Size:        pool.Len(),
		MinDF:       features.DefaultMinDF,
	})
}

func (c *modelCache) get(key string) (*PoolModel, bool) {
	m, ok := c.lru.Get(key)
	metrics.RecordModelCache(ok, c.lru.Len())
	return m, ok
}

func (c *modelCache) add(key string, m *PoolModel) {
	c.lru.Add(key, m)
}

func (c *modelCache) prune() int {
	return c.lru.CleanupExpired()
}

func (c *modelCache) clear() {
	c.lru.Clear()
}

func (c *modelCache) stats() cache.Stats {
	return c.lru.Stats()
}
