// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package features

import (
	"strings"

	"github.com/tomtom215/playnext/internal/catalog"
)

// Mode tags emitted for the game-modes field.
const (
	TagSingle          = "single"
	TagMultiplayer     = "multiplayer"
	TagCooperative     = "cooperative"
	TagSplit           = "split"
	TagUnspecifiedMode = "unspecified_mode"
)

// Tokenize converts a game's categorical fields into feature tokens:
// genres, then themes, then platforms, then mode tags. Duplicates are kept
// because term frequency matters.
func Tokenize(g *catalog.Game) []string {
	tokens := make([]string, 0, len(g.Genres)+len(g.Themes)+len(g.Platforms)+2)
	tokens = appendLabelTokens(tokens, g.Genres)
	tokens = appendLabelTokens(tokens, g.Themes)
	tokens = appendLabelTokens(tokens, g.Platforms)
	return append(tokens, ModeTags(g.GameModes)...)
}

// FeatureText joins a game's tokens with single spaces.
func FeatureText(g *catalog.Game) string {
	return strings.Join(Tokenize(g), " ")
}

// LabelToken lower-cases a label and collapses whitespace runs to "_".
//
//	"Role-playing (RPG)" -> "role-playing_(rpg)"
func LabelToken(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

func appendLabelTokens(tokens, labels []string) []string {
	for _, label := range labels {
		if tok := LabelToken(label); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ModeTags classifies game modes into the closed tag set by case-insensitive
// substring presence. Several tags may co-occur; no match yields exactly
// TagUnspecifiedMode.
func ModeTags(modes []string) []string {
	txt := strings.ToLower(strings.Join(modes, " "))

	var tags []string
	if strings.Contains(txt, "single") {
		tags = append(tags, TagSingle)
	}
	if strings.Contains(txt, "multiplayer") {
		tags = append(tags, TagMultiplayer)
	}
	if strings.Contains(txt, "co-operative") || strings.Contains(txt, "cooperative") {
		tags = append(tags, TagCooperative)
	}
	if strings.Contains(txt, "split") {
		tags = append(tags, TagSplit)
	}
	if len(tags) == 0 {
		return []string{TagUnspecifiedMode}
	}
	return tags
}
