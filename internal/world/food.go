package world

import "github.com/go-gl/mathgl/mgl64"

// Food is a pellet. Value is the mass granted to whoever eats it.
type Food struct {
	ID    int64
	Pos   mgl64.Vec2
	R     float64
	Value float64
	Type  string
	Color string
}

// SpawnFood inserts a pellet with the next food id.
func (s *State) SpawnFood(pos mgl64.Vec2, r, value float64, typ, color string) *Food {
	f := &Food{
		ID:    s.nextFoodID,
		Pos:   pos,
		R:     r,
		Value: value,
		Type:  typ,
		Color: color,
	}
	s.nextFoodID++
	s.foods.set(f.ID, f)
	s.foodGrid.Add(f.ID, f.Pos)
	return f
}

// RemoveFood deletes a pellet and returns it, or nil if it is already gone.
func (s *State) RemoveFood(id int64) *Food {
	f, ok := s.foods.remove(id)
	if !ok {
		return nil
	}
	s.foodGrid.Remove(f.ID, f.Pos)
	return f
}

func (s *State) Food(id int64) *Food {
	f, _ := s.foods.get(id)
	return f
}

// Foods returns all pellets in id order. The slice is a copy.
func (s *State) Foods() []*Food {
	return s.foods.values()
}

func (s *State) FoodCount() int {
	return s.foods.len()
}

// FoodsNear returns pellets whose cell overlaps the square of half-width reach
// around pos, in id order. Callers do the exact distance test.
func (s *State) FoodsNear(pos mgl64.Vec2, reach float64) []*Food {
	ids := s.foodGrid.Query(pos, reach)
	out := make([]*Food, 0, len(ids))
	for _, id := range ids {
		if f, ok := s.foods.get(id); ok {
			out = append(out, f)
		}
	}
	return out
}

// MarkFoodConsumed records that at least one pellet was eaten this tick.
func (s *State) MarkFoodConsumed() {
	s.foodConsumed = true
}

// TakeFoodConsumed reports and clears the consumed flag.
func (s *State) TakeFoodConsumed() bool {
	c := s.foodConsumed
	s.foodConsumed = false
	return c
}
