// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"sort"

	"github.com/tomtom215/playnext/internal/catalog"
)

// DefaultTopPlatforms is the number of platforms shown when no top-N is given.
const DefaultTopPlatforms = 8

// PlatformCount is the number of distinct games available on a platform.
type PlatformCount struct {
	Platform string `json:"platform"`
	Games    int    `json:"games"`
}

// PlatformDistribution counts distinct games per platform label in the pool.
// A game listing a platform twice counts once. The result is sorted by count
// descending, then platform name ascending.
func PlatformDistribution(pool *catalog.Pool) []PlatformCount {
	counts := make(map[string]int)
	seen := make(map[string]struct{})
	games := pool.Games()
	for i := range games {
		clear(seen)
		for _, platform := range games[i].Platforms {
			if _, dup := seen[platform]; dup {
				continue
			}
			seen[platform] = struct{}{}
			counts[platform]++
		}
	}

	dist := make([]PlatformCount, 0, len(counts))
	for platform, n := range counts {
		dist = append(dist, PlatformCount{Platform: platform, Games: n})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Games != dist[j].Games {
			return dist[i].Games > dist[j].Games
		}
		return dist[i].Platform < dist[j].Platform
	})
	return dist
}

// TopPlatforms returns the first n entries of dist. Non-positive n or n past
// the end returns dist unchanged.
func TopPlatforms(dist []PlatformCount, n int) []PlatformCount {
	if n <= 0 || n >= len(dist) {
		return dist
	}
	return dist[:n]
}
