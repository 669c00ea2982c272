package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// parseColor understands the two color forms the server emits: hex for food
// and hsl() for players.
func parseColor(s string) tcell.Color {
	switch {
	case s == "":
		return tcell.ColorWhite
	case s[0] == '#':
		return tcell.GetColor(s)
	}
	var h, sat, l int
	if _, err := fmt.Sscanf(s, "hsl(%d,%d%%,%d%%)", &h, &sat, &l); err != nil {
		return tcell.ColorWhite
	}
	r, g, b := colorful.Hsl(float64(h), float64(sat)/100, float64(l)/100).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
