// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"strings"

	"github.com/tomtom215/playnext/internal/catalog"
)

// Mode patterns are matched case-insensitively against the raw Game Modes text.
const singlePlayerPattern = "single player"

var multiPlayerPatterns = []string{"multiplayer", "co-operative"}

// Filter selects games from src that pass every filter in p and returns them
// as a deduplicated pool. The source is not modified. Because Pool is itself
// a Source, filtering a filtered pool with the same params is a no-op.
func Filter(src catalog.Source, p FilterParams) *catalog.Pool {
	games := src.Games()
	kept := make([]catalog.Game, 0, len(games))
	for i := range games {
		if p.matches(&games[i]) {
			kept = append(kept, games[i])
		}
	}
	return catalog.NewPool(kept)
}

func (p *FilterParams) matches(g *catalog.Game) bool {
	return g.Rating >= p.MinRating &&
		g.RatingCount >= p.MinCount &&
		containsAny(g.GenresText, p.Genres) &&
		containsAny(g.PlatformsText, p.Platforms) &&
		containsAny(g.ThemesText, p.Themes) &&
		p.Mode.matches(g.GameModesText)
}

// containsAny reports whether text contains any label as a literal,
// case-sensitive substring. No labels means no constraint.
func containsAny(text string, labels []string) bool {
	if len(labels) == 0 {
		return true
	}
	for _, label := range labels {
		if strings.Contains(text, label) {
			return true
		}
	}
	return false
}

func (m ModePreference) matches(modesText string) bool {
	if m == "" || m == ModeAny {
		return true
	}

	text := strings.ToLower(modesText)
	single := strings.Contains(text, singlePlayerPattern)
	multi := false
	for _, pattern := range multiPlayerPatterns {
		if strings.Contains(text, pattern) {
			multi = true
			break
		}
	}

	switch m {
	case ModeSingleOnly:
		return single && !multi
	case ModeMultiOnly:
		return multi
	case ModeBoth:
		return single && multi
	default:
		return false
	}
}
