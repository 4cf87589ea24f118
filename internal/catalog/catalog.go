// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

// Package catalog holds the immutable game catalog and its loaders.
//
// A Catalog is built once from a dataset file. Rating and rating-count
// normalization bounds are computed over every row at that point and reused
// for every query; filtered pools never renormalize. Catalogs are safe for
// concurrent readers and are never mutated after construction.
package catalog

import (
	"sort"
	"sync/atomic"
	"time"
)

var generationCounter atomic.Uint64

// Bounds are the min/max values used for min-max normalization.
type Bounds struct {
	RatingMin float64 `json:"rating_min"`
	RatingMax float64 `json:"rating_max"`
	CountMin  float64 `json:"rating_count_min"`
	CountMax  float64 `json:"rating_count_max"`
}

// Normalize maps v into [0,1] using min and max. A degenerate range yields 0.
func Normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	n := (v - lo) / (hi - lo)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	default:
		return n
	}
}

// Catalog is the full, immutable set of loaded games.
type Catalog struct {
	games      []Game
	bounds     Bounds
	generation uint64
	source     string
	loadedAt   time.Time
}

// Summary describes a loaded catalog.
type Summary struct {
	Games      int       `json:"games"`
	Bounds     Bounds    `json:"bounds"`
	Generation uint64    `json:"generation"`
	Source     string    `json:"source,omitempty"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// New builds a catalog from games, computing normalization bounds over all
// of them. The slice is copied; callers may reuse it.
func New(games []Game, source string) *Catalog {
	c := &Catalog{
		games:      make([]Game, len(games)),
		generation: generationCounter.Add(1),
		source:     source,
		loadedAt:   time.Now(),
	}
	copy(c.games, games)

	if len(c.games) > 0 {
		b := Bounds{
			RatingMin: c.games[0].Rating,
			RatingMax: c.games[0].Rating,
			CountMin:  float64(c.games[0].RatingCount),
			CountMax:  float64(c.games[0].RatingCount),
		}
		for i := range c.games {
			r, n := c.games[i].Rating, float64(c.games[i].RatingCount)
			b.RatingMin = min(b.RatingMin, r)
			b.RatingMax = max(b.RatingMax, r)
			b.CountMin = min(b.CountMin, n)
			b.CountMax = max(b.CountMax, n)
		}
		c.bounds = b
	}

	for i := range c.games {
		g := &c.games[i]
		g.RatingNorm = Normalize(g.Rating, c.bounds.RatingMin, c.bounds.RatingMax)
		g.RatingCountNorm = Normalize(float64(g.RatingCount), c.bounds.CountMin, c.bounds.CountMax)
	}
	return c
}

// Len returns the number of games, duplicates included.
func (c *Catalog) Len() int { return len(c.games) }

// Games returns the catalog rows. The slice is shared and must not be modified.
func (c *Catalog) Games() []Game { return c.games }

// Bounds returns the normalization bounds fixed at load.
func (c *Catalog) Bounds() Bounds { return c.bounds }

// Generation identifies this catalog snapshot. Each New call gets a fresh value.
func (c *Catalog) Generation() uint64 { return c.generation }

// Summary returns size, bounds, and provenance of the catalog.
func (c *Catalog) Summary() Summary {
	return Summary{
		Games:      len(c.games),
		Bounds:     c.bounds,
		Generation: c.generation,
		Source:     c.source,
		LoadedAt:   c.loadedAt,
	}
}

// Facets lists the selectable labels across the catalog.
type Facets struct {
	Genres    []string `json:"genres"`
	Platforms []string `json:"platforms"`
	Themes    []string `json:"themes"`
}

// Facets returns sorted unique genres, platforms, and themes, placeholders excluded.
func (c *Catalog) Facets() Facets {
	return Facets{
		Genres:    uniqueLabels(c.games, func(g *Game) []string { return g.Genres }),
		Platforms: uniqueLabels(c.games, func(g *Game) []string { return g.Platforms }),
		Themes:    uniqueLabels(c.games, func(g *Game) []string { return g.Themes }),
	}
}

func uniqueLabels(games []Game, field func(*Game) []string) []string {
	seen := make(map[string]struct{})
	for i := range games {
		for _, label := range field(&games[i]) {
			if label == PlaceholderUnknown || label == PlaceholderUnspecified {
				continue
			}
			seen[label] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
