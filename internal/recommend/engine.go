// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/logging"
	"github.com/tomtom215/playnext/internal/metrics"
	"github.com/tomtom215/playnext/internal/recommend/algorithms"
	"github.com/tomtom215/playnext/internal/recommend/reranking"
	"github.com/tomtom215/playnext/internal/validation"
)

// Request outcomes reported to metrics.
const (
	outcomeOK      = "ok"
	outcomeEmpty   = "empty"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Engine runs the filter, vectorize, similarity and rank pipeline against the
// current catalog snapshot. It is safe for concurrent use: the catalog is
// immutable and swapped atomically, and pool models are shared read-only.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog atomic.Pointer[catalog.Catalog]

	// nil when disabled
	models   *modelCache
	reranker *reranking.MMR

	requestCount atomic.Int64
	errorCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// NewEngine creates a new recommendation engine. A nil cfg uses DefaultConfig.
// The engine reports ErrNoCatalog until SetCatalog is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.models = newModelCache(cfg.Cache)
	}
	if cfg.Diversity.Enabled() {
		e.reranker = reranking.NewMMR(cfg.Diversity.MMRLambda)
		e.logger.Info().
			Str("reranker", e.reranker.Name()).
			Float64("lambda", e.reranker.Lambda()).
			Msg("registered reranker")
	}
	return e, nil
}

// SetCatalog installs a new catalog snapshot. In-flight requests keep the
// snapshot they started with. Cached pool models of older snapshots are dropped.
func (e *Engine) SetCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	old := e.catalog.Swap(c)
	if old != nil && old != c && e.models != nil {
		e.models.clear()
	}
	metrics.SetCatalogGeneration(c.Generation())

	e.logger.Info().
		Int("games", c.Len()).
		Uint64("generation", c.Generation()).
		Msg("catalog snapshot installed")
}

// PruneModels drops pool models whose TTL has passed and returns how many
// were removed. It is a no-op when the model cache is disabled.
func (e *Engine) PruneModels() int {
	if e.models == nil {
		return 0
	}
	n := e.models.prune()
	if n > 0 {
		e.logger.Debug().Int("removed", n).Msg("expired pool models pruned")
	}
	return n
}

// Catalog returns the current snapshot or ErrNoCatalog.
func (e *Engine) Catalog() (*catalog.Catalog, error) {
	c := e.catalog.Load()
	if c == nil {
		return nil, ErrNoCatalog
	}
	return c, nil
}

// Ready reports whether a catalog is loaded.
func (e *Engine) Ready() bool {
	return e.catalog.Load() != nil
}

// Filter validates p and returns the matching pool from the current catalog.
func (e *Engine) Filter(ctx context.Context, p FilterParams) (*catalog.Pool, error) {
	if err := validateRequest(&p); err != nil {
		return nil, err
	}
	c, err := e.Catalog()
	if err != nil {
		return nil, err
	}
	return e.filter(ctx, c, p)
}

func (e *Engine) filter(ctx context.Context, c *catalog.Catalog, p FilterParams) (*catalog.Pool, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	start := time.Now()
	pool := Filter(c, p)
	metrics.RecordStage("filter", time.Since(start))
	return pool, nil
}

// RecommendSimilar ranks the filtered pool against an anchor game:
// score(j) = sim(anchor, j) * (w_rating*rating_norm(j) + w_count*ratingcount_norm(j)).
// The anchor is never part of the result. An empty pool yields an empty,
// successful response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendSimilar(ctx context.Context, req SimilarRequest) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)
	logger := e.requestLogger(ctx)

	if err := validateRequest(&req); err != nil {
		return nil, e.fail(RankingSimilar, err)
	}
	weights := e.config.Defaults.Weights
	if req.Weights != nil {
		weights = *req.Weights
	}
	k, clamped := e.config.Limits.clampK(req.TopK)
	anchor := req.anchor()

	c, err := e.Catalog()
	if err != nil {
		return nil, e.fail(RankingSimilar, err)
	}
	pool, err := e.filter(ctx, c, req.Filter)
	if err != nil {
		return nil, e.fail(RankingSimilar, err)
	}

	meta := ResponseMetadata{
		Mode:              RankingSimilar,
		PoolSize:          pool.Len(),
		TopK:              k,
		TopKClamped:       clamped,
		AnchorKind:        anchor.Kind().String(),
		Weights:           &weights,
		CatalogGeneration: c.Generation(),
	}
	if pool.Empty() {
		logger.Debug().Msg("no games match filters")
		return e.finish(meta, nil, start), nil
	}

	anchorIdx, err := anchor.Resolve(pool)
	if err != nil {
		return nil, e.fail(RankingSimilar, err)
	}
	meta.Anchor = pool.Game(anchorIdx).Name

	model, hit, err := e.poolModel(ctx, c.Generation(), pool)
	if err != nil {
		return nil, e.fail(RankingSimilar, err)
	}
	meta.CacheHit = hit
	meta.VocabularySize = model.Vocabulary.Len()

	if err := ctx.Err(); err != nil {
		return nil, e.fail(RankingSimilar, fmt.Errorf("rank: %w", err))
	}

	rankStart := time.Now()
	candidates := k
	if e.reranker != nil {
		candidates = min(k*e.config.Diversity.CandidateMultiplier, pool.Len())
	}
	items, err := algorithms.RankSimilar(pool, model.Similarity, anchorIdx, candidates, weights)
	if err != nil {
		return nil, e.fail(RankingSimilar, fmt.Errorf("rank similar: %w", err))
	}
	if e.reranker != nil && len(items) > k {
		items = e.reranker.Rerank(ctx, items, model.Similarity, k)
		meta.Reranked = true
	}
	metrics.RecordStage("rank", time.Since(rankStart))

	resp := e.finish(meta, items, start)
	logger.Debug().
		Str("anchor", meta.Anchor).
		Str("anchor_kind", meta.AnchorKind).
		Int("pool", meta.PoolSize).
		Int("vocabulary", meta.VocabularySize).
		Bool("cache_hit", hit).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("similar recommendation complete")
	return resp, nil
}

// RecommendGems ranks the gems pool by
// alpha*rating_norm + (1-alpha)*(1-ratingcount_norm). The gems pool applies
// every filter in req.Filter except MinCount, which is replaced by the gem
// rating-count floor.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendGems(ctx context.Context, req GemsRequest) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)
	logger := e.requestLogger(ctx)

	if err := validateRequest(&req); err != nil {
		return nil, e.fail(RankingGems, err)
	}
	alpha := e.config.Defaults.Alpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	minGemCount := e.config.Defaults.GemMinCount
	if req.MinGemCount != nil {
		minGemCount = *req.MinGemCount
	}
	k, clamped := e.config.Limits.clampK(req.TopK)

	c, err := e.Catalog()
	if err != nil {
		return nil, e.fail(RankingGems, err)
	}

	params := req.Filter
	params.MinCount = minGemCount
	pool, err := e.filter(ctx, c, params)
	if err != nil {
		return nil, e.fail(RankingGems, err)
	}

	meta := ResponseMetadata{
		Mode:              RankingGems,
		PoolSize:          pool.Len(),
		TopK:              k,
		TopKClamped:       clamped,
		Alpha:             &alpha,
		MinGemCount:       &minGemCount,
		CatalogGeneration: c.Generation(),
	}

	if err := ctx.Err(); err != nil {
		return nil, e.fail(RankingGems, fmt.Errorf("rank: %w", err))
	}

	rankStart := time.Now()
	items, err := algorithms.RankGems(pool, alpha, minGemCount, k)
	if err != nil {
		return nil, e.fail(RankingGems, fmt.Errorf("rank gems: %w", err))
	}
	metrics.RecordStage("rank", time.Since(rankStart))

	resp := e.finish(meta, items, start)
	logger.Debug().
		Float64("alpha", alpha).
		Int("min_gem_count", minGemCount).
		Int("pool", meta.PoolSize).
		Int("returned", len(resp.Items)).
		Msg("gems recommendation complete")
	return resp, nil
}

// PlatformDistribution returns the platform share of the filtered pool,
// truncated to topN entries when topN > 0.
func (e *Engine) PlatformDistribution(ctx context.Context, p FilterParams, topN int) (*Distribution, error) {
	if topN < 0 {
		return nil, fmt.Errorf("%w: top_n must be >= 0, got %d", ErrInvalidParameter, topN)
	}
	pool, err := e.Filter(ctx, p)
	if err != nil {
		return nil, err
	}
	dist := PlatformDistribution(pool)
	return &Distribution{
		Platforms:      TopPlatforms(dist, topN),
		PoolSize:       pool.Len(),
		TotalPlatforms: len(dist),
	}, nil
}

// Search returns anchor candidates from the filtered pool. A non-positive
// limit uses the configured default.
func (e *Engine) Search(ctx context.Context, p FilterParams, query string, limit int) ([]string, error) {
	pool, err := e.Filter(ctx, p)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = e.config.Search.Limit
	}
	return SearchNames(pool, query, limit, e.config.Search.Cutoff), nil
}

// Facets returns the selectable labels of the current catalog.
func (e *Engine) Facets() (catalog.Facets, error) {
	c, err := e.Catalog()
	if err != nil {
		return catalog.Facets{}, err
	}
	return c.Facets(), nil
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount: e.requestCount.Load(),
		ErrorCount:   e.errorCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
	}
	if e.models != nil {
		m.ModelCache = e.models.stats()
	}
	return m
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// poolModel returns the memoized model for pool or builds it.
func (e *Engine) poolModel(ctx context.Context, generation uint64, pool *catalog.Pool) (*PoolModel, bool, error) {
	var key string
	if e.models != nil {
		key = e.models.key(generation, pool)
		if m, ok := e.models.get(key); ok {
			e.cacheHits.Add(1)
			return m, true, nil
		}
		e.cacheMisses.Add(1)
	}

	m, err := BuildPoolModel(ctx, pool, e.config.SimilarityWorkers)
	if err != nil {
		return nil, false, err
	}
	if e.models != nil {
		e.models.add(key, m)
	}
	return m, false, nil
}

// finish stamps latency and records the outcome of a successful request.
//
//nolint:gocritic // hugeParam: meta is built by value in the caller
func (e *Engine) finish(meta ResponseMetadata, items []algorithms.ScoredGame, start time.Time) *Response {
	if items == nil {
		items = []algorithms.ScoredGame{}
	}
	meta.EmptyPool = meta.PoolSize == 0
	meta.LatencyMS = time.Since(start).Milliseconds()

	outcome := outcomeOK
	if len(items) == 0 {
		outcome = outcomeEmpty
	}
	metrics.RecordRecommendation(string(meta.Mode), outcome, len(items))

	return &Response{Items: items, Metadata: meta}
}

// fail records a failed request and returns err unchanged.
func (e *Engine) fail(mode RankingMode, err error) error {
	outcome := outcomeError
	if errors.Is(err, ErrInvalidParameter) {
		outcome = outcomeInvalid
	} else {
		e.errorCount.Add(1)
	}
	metrics.RecordRecommendation(string(mode), outcome, 0)
	return err
}

func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return e.logger.With().Str("request_id", id).Logger()
	}
	return e.logger
}

// validateRequest runs struct validation and maps failures to ErrInvalidParameter.
// The *validation.RequestValidationError stays reachable with errors.As.
func validateRequest(req any) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, verr)
	}
	return nil
}
