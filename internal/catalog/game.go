// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package catalog

import "strings"

// Placeholders substituted for absent categorical cells.
const (
	PlaceholderUnknown     = "Unknown"
	PlaceholderUnspecified = "Unspecified"
)

// Game is one catalog entry.
//
// The list fields hold labels split from the comma-separated source cells.
// The *Text fields keep the serialized cell text, which the filter engine
// matches against.
type Game struct {
	Name         string   `json:"name"`
	Genres       []string `json:"genres"`
	Themes       []string `json:"themes"`
	Platforms    []string `json:"platforms"`
	GameModes    []string `json:"game_modes"`
	Developers   []string `json:"developers,omitempty"`
	Publishers   []string `json:"publishers,omitempty"`
	ReleaseYears []string `json:"release_years,omitempty"`

	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`

	// Min-max normalized over the full catalog, in [0,1].
	RatingNorm      float64 `json:"rating_norm"`
	RatingCountNorm float64 `json:"rating_count_norm"`

	GenresText    string `json:"-"`
	ThemesText    string `json:"-"`
	PlatformsText string `json:"-"`
	GameModesText string `json:"-"`
}

// Quality returns RatingNorm + RatingCountNorm, the "broadly excellent" measure
// used to pick a default anchor.
func (g *Game) Quality() float64 {
	return g.RatingNorm + g.RatingCountNorm
}

// SplitLabels splits a comma-separated cell into trimmed, non-empty labels.
func SplitLabels(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// labelField returns the serialized text and label list for a cell,
// substituting placeholder when the cell holds no labels.
func labelField(raw, placeholder string) (string, []string) {
	labels := SplitLabels(raw)
	if len(labels) == 0 {
		return placeholder, []string{placeholder}
	}
	return strings.TrimSpace(raw), labels
}

// NewGame builds a Game from raw cell values, applying placeholders.
// Normalized scores are filled in when the game joins a Catalog.
func NewGame(name string, rating float64, ratingCount int, cells map[string]string) Game {
	g := Game{
		Name:        strings.TrimSpace(name),
		Rating:      rating,
		RatingCount: ratingCount,
	}
	g.GenresText, g.Genres = labelField(cells[ColumnGenres], PlaceholderUnknown)
	g.ThemesText, g.Themes = labelField(cells[ColumnThemes], PlaceholderUnspecified)
	g.PlatformsText, g.Platforms = labelField(cells[ColumnPlatforms], PlaceholderUnknown)
	g.GameModesText, g.GameModes = labelField(cells[ColumnGameModes], PlaceholderUnspecified)
	_, g.Developers = labelField(cells[ColumnDevelopers], PlaceholderUnknown)
	_, g.Publishers = labelField(cells[ColumnPublishers], PlaceholderUnknown)
	_, g.ReleaseYears = labelField(cells[ColumnReleaseYears], PlaceholderUnknown)
	return g
}
