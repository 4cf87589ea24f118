// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package algorithms

import (
	"fmt"

	"github.com/tomtom215/playnext/internal/catalog"
)

// ErrAnchorNotFound reports an explicit anchor that is not in the pool.
var ErrAnchorNotFound = fmt.Errorf("%w: anchor not in pool", ErrInvalidParameter)

// AnchorKind distinguishes the two anchor variants.
type AnchorKind int

const (
	// AnchorDefault picks the pool's most broadly excellent game.
	AnchorDefault AnchorKind = iota
	// AnchorExplicit names a specific game.
	AnchorExplicit
)

func (k AnchorKind) String() string {
	if k == AnchorExplicit {
		return "explicit"
	}
	return "default"
}

// Anchor is the query point for content-based ranking.
// The zero value is the default anchor.
type Anchor struct {
	kind AnchorKind
	name string
}

// DefaultAnchor returns the anchor resolved by DefaultAnchorIndex.
func DefaultAnchor() Anchor { return Anchor{kind: AnchorDefault} }

// ExplicitAnchor returns an anchor naming a game.
func ExplicitAnchor(name string) Anchor { return Anchor{kind: AnchorExplicit, name: name} }

// Kind returns the anchor variant.
func (a Anchor) Kind() AnchorKind { return a.kind }

// Name returns the game name of an explicit anchor, or "".
func (a Anchor) Name() string { return a.name }

// Resolve returns the anchor's pool index. An empty pool resolves to -1
// without error.
func (a Anchor) Resolve(pool *catalog.Pool) (int, error) {
	if pool.Empty() {
		return -1, nil
	}
	if a.kind == AnchorDefault {
		return DefaultAnchorIndex(pool), nil
	}
	idx, ok := pool.IndexOf(a.name)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrAnchorNotFound, a.name)
	}
	return idx, nil
}

// DefaultAnchorIndex returns the first pool index maximizing
// RatingNorm + RatingCountNorm, or -1 for an empty pool.
func DefaultAnchorIndex(pool *catalog.Pool) int {
	best, bestQ := -1, 0.0
	for i := 0; i < pool.Len(); i++ {
		if q := pool.Game(i).Quality(); best < 0 || q > bestQ {
			best, bestQ = i, q
		}
	}
	return best
}
