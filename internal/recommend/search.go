// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/tomtom215/playnext/internal/catalog"
	"github.com/tomtom215/playnext/internal/logging"
)

// Search defaults.
const (
	DefaultSearchLimit  = 25
	DefaultSearchCutoff = 0.4
)

type nameMatch struct {
	name       string
	similarity float32
}

// SearchNames finds anchor candidates in the pool. Names are considered in
// sorted order:
//
//   - an empty query returns the first limit names
//   - otherwise names containing the query (case-insensitive) are returned
//   - if none contain it, names with Jaro-Winkler similarity >= cutoff are
//     returned, best first
//
// At most limit names are returned in every case.
func SearchNames(pool *catalog.Pool, query string, limit int, cutoff float64) []string {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	names := pool.Names()
	sort.Strings(names)

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return names[:min(limit, len(names))]
	}

	out := make([]string, 0, min(limit, len(names)))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, name)
			if len(out) == limit {
				return out
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	var matches []nameMatch
	for _, name := range names {
		similarity := edlib.JaroWinklerSimilarity(q, strings.ToLower(name))
		if float64(similarity) >= cutoff {
			matches = append(matches, nameMatch{name: name, similarity: similarity})
		}
	}

	// Stable so equal similarities stay alphabetical.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	if len(matches) > 0 {
		logging.Debug().
			Str("query", query).
			Str("best", matches[0].name).
			Float32("similarity", matches[0].similarity).
			Int("matches", len(matches)).
			Msg("fuzzy anchor search fallback")
	}

	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.name)
	}
	return out
}
