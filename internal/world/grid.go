package world

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// FoodGrid is a cell-based index of pellet positions. Pellets never move, so
// entries change only on spawn and removal.
// Accessed only from the game loop goroutine. No locks.

const foodCellSize = 64.0

type cellKey struct {
	cx int32
	cy int32
}

func toCellCoord(v float64) int32 {
	return int32(math.Floor(v / foodCellSize))
}

type FoodGrid struct {
	cells map[cellKey]map[int64]struct{} // cellKey → set of food ids
}

func NewFoodGrid() *FoodGrid {
	return &FoodGrid{
		cells: make(map[cellKey]map[int64]struct{}),
	}
}

func (g *FoodGrid) key(pos mgl64.Vec2) cellKey {
	return cellKey{cx: toCellCoord(pos.X()), cy: toCellCoord(pos.Y())}
}

// Add places a pellet into the grid.
func (g *FoodGrid) Add(id int64, pos mgl64.Vec2) {
	k := g.key(pos)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[int64]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

// Remove takes a pellet out of the grid.
func (g *FoodGrid) Remove(id int64, pos mgl64.Vec2) {
	k := g.key(pos)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Query returns the ids in every cell overlapping the square [pos-reach, pos+reach],
// sorted ascending so callers see pellets in spawn order.
func (g *FoodGrid) Query(pos mgl64.Vec2, reach float64) []int64 {
	minX, maxX := toCellCoord(pos.X()-reach), toCellCoord(pos.X()+reach)
	minY, maxY := toCellCoord(pos.Y()-reach), toCellCoord(pos.Y()+reach)
	var result []int64
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for id := range g.cells[cellKey{cx: cx, cy: cy}] {
				result = append(result, id)
			}
		}
	}
	slices.Sort(result)
	return result
}
