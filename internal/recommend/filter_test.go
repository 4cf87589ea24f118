// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package recommend

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playnext/internal/catalog"
)

func testGame(name string, rating float64, count int, genres, platforms, themes, modes string) catalog.Game {
	return catalog.NewGame(name, rating, count, map[string]string{
		catalog.ColumnGenres:    genres,
		catalog.ColumnPlatforms: platforms,
		catalog.ColumnThemes:    themes,
		catalog.ColumnGameModes: modes,
	})
}

// testCatalog is a small catalog with one duplicated name and one game
// whose categorical cells are all empty.
func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Game{
		testGame("Elden Ring", 95, 3000, "Role-playing (RPG), Adventure", "PC (Microsoft Windows), PlayStation 5", "Action, Fantasy, Open world", "Single player, Multiplayer, Co-operative"),
		testGame("Hollow Knight", 90, 1200, "Platform, Adventure, Indie", "PC (Microsoft Windows), Nintendo Switch", "Action, Fantasy", "Single player"),
		testGame("Stardew Valley", 88, 900, "Simulator, Role-playing (RPG), Indie", "PC (Microsoft Windows), Nintendo Switch, PlayStation 4", "Sandbox", "Single player, Multiplayer, Co-operative"),
		testGame("Celeste", 87, 700, "Platform, Indie", "PC (Microsoft Windows), Nintendo Switch", "Action", "Single player"),
		testGame("Rocket League", 80, 1500, "Sport, Racing", "PC (Microsoft Windows), PlayStation 4, Xbox One", "Action", "Multiplayer, Split screen"),
		testGame("Obscure Gem", 85, 8, "Puzzle, Indie", "PC (Microsoft Windows)", "Mystery", "Single player"),
		testGame("Elden Ring", 10, 1, "Duplicate", "PC (Microsoft Windows)", "", "Multiplayer"),
		testGame("Tiny Unknown", 40, 2, "Puzzle", "", "", ""),
	}, "test")
}

func poolNames(p *catalog.Pool) string {
	return fmt.Sprint(p.Names())
}

func TestFilter(t *testing.T) {
	t.Parallel()

	c := testCatalog()

	tests := []struct {
		name   string
		params FilterParams
		want   string
	}{
		{"no constraints dedups", FilterParams{},
			"[Elden Ring Hollow Knight Stardew Valley Celeste Rocket League Obscure Gem Tiny Unknown]"},
		{"single genre", FilterParams{Genres: []string{"Indie"}},
			"[Hollow Knight Stardew Valley Celeste Obscure Gem]"},
		{"genres are OR within field", FilterParams{Genres: []string{"Sport", "Simulator"}},
			"[Stardew Valley Rocket League]"},
		{"genre match is case-sensitive", FilterParams{Genres: []string{"indie"}}, "[]"},
		{"genre matches as substring", FilterParams{Genres: []string{"RPG"}},
			"[Elden Ring Stardew Valley]"},
		{"fields AND together", FilterParams{Genres: []string{"Platform"}, Platforms: []string{"Nintendo Switch"}, Themes: []string{"Fantasy"}},
			"[Hollow Knight]"},
		{"nonexistent genre yields empty pool", FilterParams{Genres: []string{"Nonexistent"}}, "[]"},
		{"single only", FilterParams{Mode: ModeSingleOnly},
			"[Hollow Knight Celeste Obscure Gem]"},
		{"multi only ignores single player", FilterParams{Mode: ModeMultiOnly},
			"[Elden Ring Stardew Valley Rocket League]"},
		{"both", FilterParams{Mode: ModeBoth},
			"[Elden Ring Stardew Valley]"},
		{"min rating inclusive", FilterParams{MinRating: 88},
			"[Elden Ring Hollow Knight Stardew Valley]"},
		{"min count inclusive", FilterParams{MinCount: 900},
			"[Elden Ring Hollow Knight Stardew Valley Rocket League]"},
		{"placeholder themes match literally", FilterParams{Themes: []string{catalog.PlaceholderUnspecified}},
			"[Elden Ring Tiny Unknown]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := poolNames(Filter(c, tt.params)); got != tt.want {
				t.Errorf("Filter() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFilter_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	pool := Filter(testCatalog(), FilterParams{})
	i, ok := pool.IndexOf("Elden Ring")
	if !ok {
		t.Fatal("Elden Ring missing from pool")
	}
	if got := pool.Game(i).Rating; got != 95 {
		t.Errorf("Elden Ring rating = %v, want 95 (first occurrence)", got)
	}

	// The duplicate survives when only it passes the filter.
	dup := Filter(testCatalog(), FilterParams{Genres: []string{"Duplicate"}})
	if dup.Len() != 1 || dup.Game(0).Rating != 10 {
		t.Errorf("duplicate-only pool = %s", poolNames(dup))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	c := testCatalog()
	params := []FilterParams{
		{},
		{Genres: []string{"Indie"}},
		{Mode: ModeSingleOnly, MinRating: 86},
		{Platforms: []string{"PlayStation 4", "Xbox One"}, MinCount: 1000},
		{Mode: ModeBoth, Themes: []string{"Fantasy", "Sandbox"}},
	}

	for i, p := range params {
		once := Filter(c, p)
		twice := Filter(once, p)
		if poolNames(once) != poolNames(twice) {
			t.Errorf("params[%d]: Filter(Filter(c)) = %s, want %s", i, poolNames(twice), poolNames(once))
		}
		if once.Fingerprint() != twice.Fingerprint() {
			t.Errorf("params[%d]: fingerprint changed on refilter", i)
		}
	}
}

func TestFilter_DoesNotMutateCatalog(t *testing.T) {
	t.Parallel()

	c := testCatalog()
	before := c.Len()
	pool := Filter(c, FilterParams{Genres: []string{"Indie"}})
	pool.Game(0).Name = "changed"

	if c.Len() != before {
		t.Errorf("catalog len = %d, want %d", c.Len(), before)
	}
	for _, g := range c.Games() {
		if g.Name == "changed" {
			t.Fatal("pool edit leaked into catalog")
		}
	}
}

func TestParseModePreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ModePreference
		wantErr bool
	}{
		{"", ModeAny, false},
		{"Any", ModeAny, false},
		{"Single Only", ModeSingleOnly, false},
		{"single_only", ModeSingleOnly, false},
		{"multi-only", ModeMultiOnly, false},
		{"  BOTH ", ModeBoth, false},
		{"solo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseModePreference(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModePreference(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("ParseModePreference(%q) error should wrap ErrInvalidParameter", tt.in)
		}
		if got != tt.want {
			t.Errorf("ParseModePreference(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModePreference_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var p FilterParams
	if err := json.Unmarshal([]byte(`{"mode":"Multi Only","genres":["Indie"]}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Mode != ModeMultiOnly {
		t.Errorf("Mode = %q, want %q", p.Mode, ModeMultiOnly)
	}
}

func TestPlatformDistribution(t *testing.T) {
	t.Parallel()

	dist := PlatformDistribution(Filter(testCatalog(), FilterParams{}))
	want := "[{PC (Microsoft Windows) 6} {Nintendo Switch 3} {PlayStation 4 2} {PlayStation 5 1} {Unknown 1} {Xbox One 1}]"
	if got := fmt.Sprint(dist); got != want {
		t.Errorf("PlatformDistribution() = %s\nwant %s", got, want)
	}

	if got := TopPlatforms(dist, 2); len(got) != 2 || got[1].Platform != "Nintendo Switch" {
		t.Errorf("TopPlatforms(2) = %v", got)
	}
	if got := TopPlatforms(dist, 0); len(got) != len(dist) {
		t.Errorf("TopPlatforms(0) len = %d, want %d", len(got), len(dist))
	}
	if got := TopPlatforms(dist, 50); len(got) != len(dist) {
		t.Errorf("TopPlatforms(50) len = %d, want %d", len(got), len(dist))
	}
}

func TestPlatformDistribution_CountsDistinctGames(t *testing.T) {
	t.Parallel()

	pool := catalog.NewPool([]catalog.Game{
		testGame("A", 50, 1, "x", "PC (Microsoft Windows), PC (Microsoft Windows)", "", ""),
		testGame("B", 50, 1, "x", "PC (Microsoft Windows)", "", ""),
	})
	dist := PlatformDistribution(pool)
	if len(dist) != 1 || dist[0].Games != 2 {
		t.Errorf("PlatformDistribution() = %v, want [{PC (Microsoft Windows) 2}]", dist)
	}

	if got := PlatformDistribution(catalog.NewPool(nil)); got == nil || len(got) != 0 {
		t.Errorf("empty pool distribution = %v, want empty slice", got)
	}
}

func TestSearchNames(t *testing.T) {
	t.Parallel()

	pool := Filter(testCatalog(), FilterParams{})

	tests := []struct {
		name  string
		query string
		limit int
		want  string
	}{
		{"empty query returns sorted head", "", 3, "[Celeste Elden Ring Hollow Knight]"},
		{"substring is case-insensitive", "ELDEN", 10, "[Elden Ring]"},
		{"substring matches all containing", "e", 2, "[Celeste Elden Ring]"},
		{"fuzzy fallback", "hollow night", 1, "[Hollow Knight]"},
		{"nothing close", "zzzzzzzz", 5, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fmt.Sprint(SearchNames(pool, tt.query, tt.limit, DefaultSearchCutoff)); got != tt.want {
				t.Errorf("SearchNames(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}

	if got := SearchNames(pool, "", 0, DefaultSearchCutoff); len(got) != pool.Len() {
		t.Errorf("default limit returned %d names, want %d", len(got), pool.Len())
	}
}
