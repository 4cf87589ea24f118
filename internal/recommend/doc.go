// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package recommend implements a content-based recommendation engine for
// video games.
//
// # Architecture
//
// Each request runs a short, sequential pipeline over an immutable catalog
// snapshot:
//
//   - Filter: genres, platforms, themes, play mode, and rating thresholds select a pool
//   - Vectorize: genre, theme, platform, and mode tokens become TF-IDF rows (package features)
//   - Similarity: dense pairwise cosine over the pool (package algorithms)
//   - Rank: anchor similarity blended with quality, or hidden gems (package algorithms)
//   - Rerank: optional MMR diversity (package reranking)
//
// Vocabulary and similarity are specific to the pool, so nothing derived is
// shared between pools. A model cache keyed by catalog generation and pool
// fingerprint avoids rebuilding the same pool twice.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetCatalog(cat)
//
//	resp, err := engine.RecommendSimilar(ctx, recommend.SimilarRequest{
//	    Filter: recommend.FilterParams{Genres: []string{"Role-playing (RPG)"}, MinRating: 50},
//	    Anchor: "The Witcher 3: Wild Hunt",
//	    TopK:   10,
//	})
//
// # Errors
//
// Parameter problems wrap ErrInvalidParameter and are reported before any
// pipeline stage runs, except an explicit anchor that is not in the filtered
// pool. A filter that matches nothing is a successful, empty response with
// Metadata.EmptyPool set.
//
// # Thread Safety
//
// The engine is safe for concurrent use. SetCatalog swaps the snapshot
// atomically; requests in flight finish against the snapshot they loaded.
package recommend
