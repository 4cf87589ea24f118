// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package catalog

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Source is anything that exposes an ordered list of games.
// Both *Catalog and *Pool satisfy it, so filters compose.
type Source interface {
	Games() []Game
}

// Pool is an ordered, name-deduplicated, densely indexed subset of a catalog.
// A Pool is immutable once built.
type Pool struct {
	games       []Game
	index       map[string]int
	fingerprint uint64
}

// NewPool builds a pool from games in order, keeping the first occurrence of
// each name.
func NewPool(games []Game) *Pool {
	p := &Pool{
		games: make([]Game, 0, len(games)),
		index: make(map[string]int, len(games)),
	}

	d := xxhash.New()
	for i := range games {
		name := games[i].Name
		if _, dup := p.index[name]; dup {
			continue
		}
		p.index[name] = len(p.games)
		p.games = append(p.games, games[i])
		writeRow(d, &games[i])
	}
	p.fingerprint = d.Sum64()
	return p
}

// Len returns the number of games in the pool.
func (p *Pool) Len() int { return len(p.games) }

// Empty reports whether the pool has no games.
func (p *Pool) Empty() bool { return len(p.games) == 0 }

// Games returns the pool rows. The slice is shared and must not be modified.
func (p *Pool) Games() []Game { return p.games }

// Game returns the game at index i.
func (p *Pool) Game(i int) *Game { return &p.games[i] }

// IndexOf returns the pool index of the game with the given name.
func (p *Pool) IndexOf(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Names returns game names in pool order.
func (p *Pool) Names() []string {
	names := make([]string, len(p.games))
	for i := range p.games {
		names[i] = p.games[i].Name
	}
	return names
}

// Fingerprint is an xxhash64 digest of the pool's rows in order: names,
// feature labels and scores. Catalogs may hold several rows per name, so
// two pools with the same names can still differ in content.
func (p *Pool) Fingerprint() uint64 { return p.fingerprint }

// writeRow feeds every field a pool model depends on into d. Strings are
// NUL-terminated and label lists are length-prefixed so that boundaries
// cannot collide.
func writeRow(d *xxhash.Digest, g *Game) {
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeStr := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}

	writeStr(g.Name)
	for _, labels := range [][]string{g.Genres, g.Themes, g.Platforms, g.GameModes} {
		writeUint(uint64(len(labels)))
		for _, l := range labels {
			writeStr(l)
		}
	}
	writeUint(math.Float64bits(g.Rating))
	writeUint(uint64(g.RatingCount))
	writeUint(math.Float64bits(g.RatingNorm))
	writeUint(math.Float64bits(g.RatingCountNorm))
}
