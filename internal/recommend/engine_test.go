// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/recommend/algorithms"
	"github.com/tomtom215/playnext/internal/validation"
)

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.SetCatalog(testCatalog())
	return e
}

func itemNames(resp *Response) []string {
	out := make([]string, len(resp.Items))
	for i, item := range resp.Items {
		out[i] = item.Game.Name
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestNewEngine(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine(nil) error = %v", err)
	}
	if e.GetConfig().Limits.DefaultK != DefaultConfig().Limits.DefaultK {
		t.Error("nil config should apply defaults")
	}
	if e.Ready() {
		t.Error("engine without catalog should not be ready")
	}

	bad := DefaultConfig()
	bad.Defaults.Alpha = 2
	if _, err := NewEngine(bad, zerolog.Nop()); err == nil {
		t.Error("NewEngine() with alpha=2 should fail")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative weight", func(c *Config) { c.Defaults.Weights.Rating = -0.1 }},
		{"count weight above one", func(c *Config) { c.Defaults.Weights.Count = 1.1 }},
		{"negative gem floor", func(c *Config) { c.Defaults.GemMinCount = -1 }},
		{"zero default k", func(c *Config) { c.Limits.DefaultK = 0 }},
		{"max below default", func(c *Config) { c.Limits.MaxK = 5 }},
		{"lambda above one", func(c *Config) { c.Diversity.MMRLambda = 1.5 }},
		{"zero multiplier with diversity", func(c *Config) {
			c.Diversity.MMRLambda = 0.5
			c.Diversity.CandidateMultiplier = 0
		}},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"zero cache entries", func(c *Config) { c.Cache.MaxEntries = 0 }},
		{"zero search limit", func(c *Config) { c.Search.Limit = 0 }},
		{"cutoff above one", func(c *Config) { c.Search.Cutoff = 2 }},
		{"negative workers", func(c *Config) { c.SimilarityWorkers = -1 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	disabled := DefaultConfig()
	disabled.Cache.Enabled = false
	disabled.Cache.TTL = 0
	if err := disabled.Validate(); err != nil {
		t.Errorf("disabled cache should skip cache checks: %v", err)
	}
}

func TestEngine_NoCatalog(t *testing.T) {
	t.Parallel()

	e, _ := NewEngine(nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := e.RecommendSimilar(ctx, SimilarRequest{}); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("RecommendSimilar() error = %v, want ErrNoCatalog", err)
	}
	if _, err := e.RecommendGems(ctx, GemsRequest{}); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("RecommendGems() error = %v, want ErrNoCatalog", err)
	}
	if _, err := e.Facets(); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Facets() error = %v, want ErrNoCatalog", err)
	}
}

func TestEngine_RecommendSimilar_DefaultAnchor(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	resp, err := e.RecommendSimilar(context.Background(), SimilarRequest{})
	if err != nil {
		t.Fatalf("RecommendSimilar() error = %v", err)
	}

	meta := resp.Metadata
	if meta.Anchor != "Elden Ring" || meta.AnchorKind != "default" {
		t.Errorf("anchor = %q (%s), want Elden Ring (default)", meta.Anchor, meta.AnchorKind)
	}
	if meta.PoolSize != 7 || meta.TopK != 10 {
		t.Errorf("pool/top_k = %d/%d, want 7/10", meta.PoolSize, meta.TopK)
	}
	if len(resp.Items) != 6 {
		t.Errorf("returned %d items, want 6 (pool minus anchor)", len(resp.Items))
	}
	for _, item := range resp.Items {
		if item.Game.Name == "Elden Ring" {
			t.Fatal("anchor returned in its own results")
		}
	}
	for i := 1; i < len(resp.Items); i++ {
		if resp.Items[i].Score > resp.Items[i-1].Score {
			t.Errorf("items not sorted at %d: %v > %v", i, resp.Items[i].Score, resp.Items[i-1].Score)
		}
	}
	if meta.VocabularySize == 0 {
		t.Error("vocabulary should not be empty for a 7-game pool")
	}
	if meta.Weights == nil || *meta.Weights != (algorithms.Weights{Rating: 0.5, Count: 0.5}) {
		t.Errorf("weights = %v, want configured default", meta.Weights)
	}
}

func TestEngine_RecommendSimilar_ExplicitAnchor(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	resp, err := e.RecommendSimilar(context.Background(), SimilarRequest{
		Anchor: " Celeste ",
		TopK:   3,
	})
	if err != nil {
		t.Fatalf("RecommendSimilar() error = %v", err)
	}
	if resp.Metadata.Anchor != "Celeste" || resp.Metadata.AnchorKind != "explicit" {
		t.Errorf("anchor = %q (%s), want Celeste (explicit)", resp.Metadata.Anchor, resp.Metadata.AnchorKind)
	}
	names := itemNames(resp)
	if len(names) != 3 || names[0] != "Hollow Knight" {
		t.Errorf("results = %v, want 3 led by Hollow Knight", names)
	}

	_, err = e.RecommendSimilar(context.Background(), SimilarRequest{Anchor: "Zork"})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown anchor error = %v, want ErrInvalidParameter", err)
	}

	// Anchor exists in the catalog but is filtered out of the pool.
	_, err = e.RecommendSimilar(context.Background(), SimilarRequest{
		Anchor: "Rocket League",
		Filter: FilterParams{Genres: []string{"Indie"}},
	})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("filtered-out anchor error = %v, want ErrInvalidParameter", err)
	}
}

func TestEngine_EmptyPool(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	filter := FilterParams{Genres: []string{"Nonexistent"}}

	similar, err := e.RecommendSimilar(context.Background(), SimilarRequest{Filter: filter, Anchor: "Celeste"})
	if err != nil {
		t.Fatalf("RecommendSimilar(empty) error = %v", err)
	}
	if similar.Items == nil || len(similar.Items) != 0 || !similar.Metadata.EmptyPool {
		t.Errorf("similar = %d items, empty_pool=%v; want empty list flagged", len(similar.Items), similar.Metadata.EmptyPool)
	}

	gems, err := e.RecommendGems(context.Background(), GemsRequest{Filter: filter})
	if err != nil {
		t.Fatalf("RecommendGems(empty) error = %v", err)
	}
	if gems.Items == nil || len(gems.Items) != 0 || !gems.Metadata.EmptyPool {
		t.Errorf("gems = %d items, empty_pool=%v; want empty list flagged", len(gems.Items), gems.Metadata.EmptyPool)
	}
}

func TestEngine_SingletonPool(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	resp, err := e.RecommendSimilar(context.Background(), SimilarRequest{
		Filter: FilterParams{Genres: []string{"Sport"}},
	})
	if err != nil {
		t.Fatalf("RecommendSimilar() error = %v", err)
	}
	if resp.Metadata.PoolSize != 1 || resp.Metadata.VocabularySize != 0 {
		t.Errorf("pool/vocab = %d/%d, want 1/0", resp.Metadata.PoolSize, resp.Metadata.VocabularySize)
	}
	if len(resp.Items) != 0 || resp.Metadata.EmptyPool {
		t.Errorf("singleton = %v (empty_pool=%v), want no items from a non-empty pool", itemNames(resp), resp.Metadata.EmptyPool)
	}
}

func TestEngine_InvalidParameters(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := context.Background()

	similar := []struct {
		name string
		req  SimilarRequest
	}{
		{"negative top_k", SimilarRequest{TopK: -1}},
		{"weight above one", SimilarRequest{Weights: &algorithms.Weights{Rating: 1.5}}},
		{"negative weight", SimilarRequest{Weights: &algorithms.Weights{Count: -0.5}}},
		{"min_rating above 100", SimilarRequest{Filter: FilterParams{MinRating: 101}}},
		{"negative min_count", SimilarRequest{Filter: FilterParams{MinCount: -1}}},
		{"unknown mode", SimilarRequest{Filter: FilterParams{Mode: "solo"}}},
		{"blank genre", SimilarRequest{Filter: FilterParams{Genres: []string{""}}}},
	}
	for _, tt := range similar {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := e.RecommendSimilar(ctx, tt.req)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
			var verr *validation.RequestValidationError
			if !errors.As(err, &verr) {
				t.Errorf("error %v should carry field details", err)
			}
		})
	}

	gems := []struct {
		name string
		req  GemsRequest
	}{
		{"alpha below zero", GemsRequest{Alpha: ptr(-0.1)}},
		{"alpha above one", GemsRequest{Alpha: ptr(1.1)}},
		{"negative gem count", GemsRequest{MinGemCount: ptr(-5)}},
		{"negative top_k", GemsRequest{TopK: -2}},
	}
	for _, tt := range gems {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := e.RecommendGems(ctx, tt.req); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}

	if _, err := e.PlatformDistribution(ctx, FilterParams{}, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("PlatformDistribution(top_n=-1) error = %v, want ErrInvalidParameter", err)
	}
}

func TestEngine_TopKClamp(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.DefaultK = 2
	cfg.Limits.MaxK = 3
	e := newTestEngine(t, cfg)

	tests := []struct {
		topK        int
		wantK       int
		wantLen     int
		wantGems    int
		wantClamped bool
	}{
		{0, 2, 2, 2, false},
		{1, 1, 1, 1, false},
		{3, 3, 3, 3, false},
		{50, 3, 3, 3, true},
	}
	for _, tt := range tests {
		resp, err := e.RecommendSimilar(context.Background(), SimilarRequest{TopK: tt.topK})
		if err != nil {
			t.Fatalf("RecommendSimilar(top_k=%d) error = %v", tt.topK, err)
		}
		if resp.Metadata.TopK != tt.wantK || len(resp.Items) != tt.wantLen {
			t.Errorf("top_k=%d: metadata %d, items %d; want %d, %d", tt.topK, resp.Metadata.TopK, len(resp.Items), tt.wantK, tt.wantLen)
		}
		if resp.Metadata.TopKClamped != tt.wantClamped {
			t.Errorf("top_k=%d: TopKClamped = %v, want %v", tt.topK, resp.Metadata.TopKClamped, tt.wantClamped)
		}

		gems, err := e.RecommendGems(context.Background(), GemsRequest{TopK: tt.topK})
		if err != nil {
			t.Fatalf("RecommendGems(top_k=%d) error = %v", tt.topK, err)
		}
		if len(gems.Items) != tt.wantGems {
			t.Errorf("gems top_k=%d: %d items, want %d", tt.topK, len(gems.Items), tt.wantGems)
		}
		if gems.Metadata.TopKClamped != tt.wantClamped {
			t.Errorf("gems top_k=%d: TopKClamped = %v, want %v", tt.topK, gems.Metadata.TopKClamped, tt.wantClamped)
		}
	}
}

func TestEngine_RecommendGems(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := context.Background()

	resp, err := e.RecommendGems(ctx, GemsRequest{})
	if err != nil {
		t.Fatalf("RecommendGems() error = %v", err)
	}
	names := itemNames(resp)
	want := []string{"Obscure Gem", "Celeste", "Stardew Valley", "Hollow Knight", "Rocket League", "Elden Ring"}
	if len(names) != len(want) {
		t.Fatalf("gems = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("gems = %v, want %v", names, want)
		}
	}
	if *resp.Metadata.Alpha != 0.5 || *resp.Metadata.MinGemCount != 5 {
		t.Errorf("defaults alpha=%v min_gem_count=%v, want 0.5 and 5", *resp.Metadata.Alpha, *resp.Metadata.MinGemCount)
	}

	tests := []struct {
		name     string
		req      GemsRequest
		wantPool int
	}{
		{"gem floor replaces min_count", GemsRequest{Filter: FilterParams{MinCount: 5000}, MinGemCount: ptr(1000)}, 3},
		{"zero gem floor admits everything", GemsRequest{MinGemCount: ptr(0)}, 7},
		{"min_rating still gates gems", GemsRequest{Filter: FilterParams{MinRating: 88}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, err := e.RecommendGems(ctx, tt.req)
			if err != nil {
				t.Fatalf("RecommendGems() error = %v", err)
			}
			if resp.Metadata.PoolSize != tt.wantPool {
				t.Errorf("pool = %d, want %d", resp.Metadata.PoolSize, tt.wantPool)
			}
		})
	}
}

func TestEngine_ModelCache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := context.Background()
	req := SimilarRequest{Filter: FilterParams{Genres: []string{"Indie"}}}

	first, err := e.RecommendSimilar(ctx, req)
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, err := e.RecommendSimilar(ctx, req)
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if first.Metadata.CacheHit || !second.Metadata.CacheHit {
		t.Errorf("cache_hit = %v then %v, want false then true", first.Metadata.CacheHit, second.Metadata.CacheHit)
	}
	for i := range first.Items {
		if first.Items[i].Score != second.Items[i].Score || first.Items[i].Game.Name != second.Items[i].Game.Name {
			t.Fatalf("cached result differs at %d", i)
		}
	}

	// A different anchor over the same pool reuses the model.
	other, err := e.RecommendSimilar(ctx, SimilarRequest{Filter: req.Filter, Anchor: "Celeste"})
	if err != nil {
		t.Fatalf("anchor call error = %v", err)
	}
	if !other.Metadata.CacheHit {
		t.Error("same pool with another anchor should hit the model cache")
	}

	// A new snapshot invalidates models of the old one.
	e.SetCatalog(testCatalog())
	reloaded, err := e.RecommendSimilar(ctx, req)
	if err != nil {
		t.Fatalf("reloaded call error = %v", err)
	}
	if reloaded.Metadata.CacheHit {
		t.Error("model cache should miss after catalog reload")
	}
	if reloaded.Metadata.CatalogGeneration == first.Metadata.CatalogGeneration {
		t.Error("catalog generation should change on reload")
	}

	m := e.GetMetrics()
	if m.RequestCount != 4 || m.CacheHits != 2 || m.CacheMisses != 2 {
		t.Errorf("metrics = %+v, want 4 requests, 2 hits, 2 misses", m)
	}
}

// sameNameCatalog holds two "Foo" rows that different genre filters select.
func sameNameCatalog() *catalog.Catalog {
	row := func(name, genres, platforms string) catalog.Game {
		return catalog.NewGame(name, 80, 100, map[string]string{
			catalog.ColumnGenres:    genres,
			catalog.ColumnPlatforms: platforms,
		})
	}
	return catalog.New([]catalog.Game{
		row("Foo", "Action", "PC"),
		row("Foo", "Puzzle", "Nintendo Switch"),
		row("Bar", "Action, Puzzle", "PC"),
		row("Qux", "Action, Puzzle", "Nintendo Switch"),
		row("Baz", "Racing", "Xbox One"),
	}, "same-name.csv")
}

func TestEngine_ModelCacheSeparatesSameNamePools(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	action := SimilarRequest{Filter: FilterParams{Genres: []string{"Action"}}, Anchor: "Foo"}
	puzzle := SimilarRequest{Filter: FilterParams{Genres: []string{"Puzzle"}}, Anchor: "Foo"}

	cached, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	cached.SetCatalog(sameNameCatalog())

	uncachedCfg := DefaultConfig()
	uncachedCfg.Cache.Enabled = false
	uncached, err := NewEngine(uncachedCfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	uncached.SetCatalog(sameNameCatalog())

	if _, err := cached.RecommendSimilar(ctx, action); err != nil {
		t.Fatalf("action pool error = %v", err)
	}
	got, err := cached.RecommendSimilar(ctx, puzzle)
	if err != nil {
		t.Fatalf("puzzle pool error = %v", err)
	}
	want, err := uncached.RecommendSimilar(ctx, puzzle)
	if err != nil {
		t.Fatalf("uncached puzzle pool error = %v", err)
	}

	if got.Metadata.CacheHit {
		t.Error("puzzle pool reused the action pool model")
	}
	if len(got.Items) != len(want.Items) {
		t.Fatalf("items = %v, want %v", itemNames(got), itemNames(want))
	}
	for i := range want.Items {
		if got.Items[i].Game.Name != want.Items[i].Game.Name || got.Items[i].Score != want.Items[i].Score {
			t.Errorf("item %d = %s %.4f, want %s %.4f", i,
				got.Items[i].Game.Name, got.Items[i].Score, want.Items[i].Game.Name, want.Items[i].Score)
		}
	}
}

func TestEngine_PruneModels(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.TTL = 20 * time.Millisecond
	e := newTestEngine(t, cfg)

	if _, err := e.RecommendSimilar(context.Background(), SimilarRequest{}); err != nil {
		t.Fatalf("RecommendSimilar() error = %v", err)
	}
	if n := e.PruneModels(); n != 0 {
		t.Errorf("PruneModels() before expiry = %d, want 0", n)
	}

	time.Sleep(40 * time.Millisecond)
	if n := e.PruneModels(); n != 1 {
		t.Errorf("PruneModels() after expiry = %d, want 1", n)
	}
	if size := e.GetMetrics().ModelCache.Size; size != 0 {
		t.Errorf("model cache size = %d, want 0", size)
	}

	disabled := DefaultConfig()
	disabled.Cache.Enabled = false
	if n := newTestEngine(t, disabled).PruneModels(); n != 0 {
		t.Errorf("PruneModels() with cache disabled = %d, want 0", n)
	}
}

func TestEngine_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg)

	for i := 0; i < 2; i++ {
		resp, err := e.RecommendSimilar(context.Background(), SimilarRequest{})
		if err != nil {
			t.Fatalf("RecommendSimilar() error = %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Error("disabled cache reported a hit")
		}
	}
}

func TestEngine_Diversity(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Diversity.MMRLambda = 0.5
	e := newTestEngine(t, cfg)

	resp, err := e.RecommendSimilar(context.Background(), SimilarRequest{TopK: 2})
	if err != nil {
		t.Fatalf("RecommendSimilar() error = %v", err)
	}
	if !resp.Metadata.Reranked || len(resp.Items) != 2 {
		t.Errorf("reranked=%v items=%d, want reranked with 2 items", resp.Metadata.Reranked, len(resp.Items))
	}
	for _, item := range resp.Items {
		if item.Game.Name == resp.Metadata.Anchor {
			t.Fatal("anchor returned after reranking")
		}
	}
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.RecommendSimilar(ctx, SimilarRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RecommendSimilar() error = %v, want context.Canceled", err)
	}
	if _, err := e.RecommendGems(ctx, GemsRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("RecommendGems() error = %v, want context.Canceled", err)
	}
	if m := e.GetMetrics(); m.ErrorCount != 2 {
		t.Errorf("ErrorCount = %d, want 2", m.ErrorCount)
	}
}

func TestEngine_DistributionSearchFacets(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := context.Background()

	dist, err := e.PlatformDistribution(ctx, FilterParams{}, 2)
	if err != nil {
		t.Fatalf("PlatformDistribution() error = %v", err)
	}
	if len(dist.Platforms) != 2 || dist.TotalPlatforms != 6 || dist.PoolSize != 7 {
		t.Errorf("distribution = %+v", dist)
	}

	names, err := e.Search(ctx, FilterParams{Mode: ModeSingleOnly}, "", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(names) != 3 || names[0] != "Celeste" {
		t.Errorf("Search() = %v, want 3 single-player names starting with Celeste", names)
	}

	facets, err := e.Facets()
	if err != nil {
		t.Fatalf("Facets() error = %v", err)
	}
	for _, p := range facets.Platforms {
		if p == catalog.PlaceholderUnknown {
			t.Error("facets should exclude placeholders")
		}
	}
	if len(facets.Genres) == 0 || len(facets.Themes) == 0 {
		t.Errorf("facets = %+v, want genres and themes", facets)
	}
}
