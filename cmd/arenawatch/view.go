package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/growarena/server/internal/net/packet"
)

// Glyph is one cell to draw. Color is a "#rrggbb" or "hsl(h,s%,l%)" string
// straight from the snapshot; empty means the default foreground.
type Glyph struct {
	X, Y  int
	Ch    rune
	Color string
}

// Viewport maps arena coordinates onto a terminal. Row 0 is the status line,
// the arena fills the rows below it.
type Viewport struct {
	Cols, Rows int
	MapW, MapH float64
}

// Project returns the cell for an arena point, or false when the terminal
// has no room for the map.
func (v Viewport) Project(x, y float64) (int, int, bool) {
	rows := v.Rows - 1
	if v.Cols <= 0 || rows <= 0 || v.MapW <= 0 || v.MapH <= 0 {
		return 0, 0, false
	}
	cx := int(x / v.MapW * float64(v.Cols))
	cy := int(y / v.MapH * float64(rows))
	cx = min(max(cx, 0), v.Cols-1)
	cy = min(max(cy, 0), rows-1)
	return cx, cy + 1, true
}

const leaderboardSize = 5

// Layout turns a snapshot into glyphs. Later glyphs overwrite earlier ones on
// the same cell: food, then arrows, then players, then the status line.
func Layout(v Viewport, snap *packet.State) []Glyph {
	var out []Glyph
	if snap == nil {
		return statusLine(out, v, "waiting for snapshot...")
	}
	for _, f := range snap.Foods {
		if x, y, ok := v.Project(f.X, f.Y); ok {
			ch := '·'
			if f.Type != "normal" {
				ch = '+'
			}
			out = append(out, Glyph{X: x, Y: y, Ch: ch, Color: f.Color})
		}
	}
	for _, a := range snap.Arrows {
		if x, y, ok := v.Project(a.X, a.Y); ok {
			out = append(out, Glyph{X: x, Y: y, Ch: '*'})
		}
	}
	for _, p := range snap.Players {
		if x, y, ok := v.Project(p.X, p.Y); ok {
			out = append(out, Glyph{X: x, Y: y, Ch: playerRune(p.Name), Color: p.Color})
		}
	}

	status := fmt.Sprintf("players %d  food %d  arrows %d", len(snap.Players), len(snap.Foods), len(snap.Arrows))
	if top := leaders(snap.Players, leaderboardSize); top != "" {
		status += "  |  " + top
	}
	return statusLine(out, v, status)
}

func statusLine(out []Glyph, v Viewport, s string) []Glyph {
	x := 0
	for _, r := range s {
		if x >= v.Cols {
			break
		}
		out = append(out, Glyph{X: x, Y: 0, Ch: r})
		x++
	}
	return out
}

func playerRune(name string) rune {
	for _, r := range name {
		return r
	}
	return '@'
}

// leaders formats the n highest scores, ties broken by size.
func leaders(players []packet.PlayerView, n int) string {
	sorted := slices.Clone(players)
	slices.SortStableFunc(sorted, func(a, b packet.PlayerView) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(b.R, a.R)
	})
	var parts []string
	for i, p := range sorted {
		if i == n {
			break
		}
		parts = append(parts, fmt.Sprintf("%s %d", p.Name, p.Score))
	}
	return strings.Join(parts, ", ")
}
