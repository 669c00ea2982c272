package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Food type identifiers.
const (
	FoodNormal  = "normal"
	FoodSpeed   = "speed"
	FoodShield  = "shield"
	FoodAttract = "attract"
)

// FoodType describes one pellet kind: its spawn band, display color and radius range.
type FoodType struct {
	Type      string  `yaml:"type"`
	Color     string  `yaml:"color"`
	Chance    float64 `yaml:"chance"` // width of this type's band on the spawn roll; ignored for normal
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

type foodListFile struct {
	Types []FoodType `yaml:"types"`
}

// FoodTable holds the ordered spawn bands. Bands are cumulative over a single
// roll in file order; whatever the bands do not cover spawns as normal food.
type FoodTable struct {
	bands  []FoodType
	normal FoodType
	byType map[string]FoodType
}

// Pick maps a roll in [0,1) onto a food type.
func (t *FoodTable) Pick(roll float64) FoodType {
	acc := 0.0
	for _, b := range t.bands {
		acc += b.Chance
		if roll < acc {
			return b
		}
	}
	return t.normal
}

// Normal returns the normal food entry (used for death drops).
func (t *FoodTable) Normal() FoodType {
	return t.normal
}

// Get returns the entry for a type name.
func (t *FoodTable) Get(typ string) (FoodType, bool) {
	ft, ok := t.byType[typ]
	return ft, ok
}

// MaxRadius returns the largest radius any food type can spawn with.
func (t *FoodTable) MaxRadius() float64 {
	m := 0.0
	for _, ft := range t.byType {
		m = max(m, ft.MaxRadius)
	}
	return m
}

// Count returns the number of food types.
func (t *FoodTable) Count() int {
	return len(t.byType)
}

// LoadFoodTable loads food type data from a YAML file.
func LoadFoodTable(path string) (*FoodTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read food_types: %w", err)
	}
	var f foodListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse food_types: %w", err)
	}
	t, err := NewFoodTable(f.Types)
	if err != nil {
		return nil, fmt.Errorf("food_types %s: %w", path, err)
	}
	return t, nil
}

// NewFoodTable validates entries and builds a table. Entry order defines band order.
func NewFoodTable(types []FoodType) (*FoodTable, error) {
	t := &FoodTable{byType: make(map[string]FoodType, len(types))}
	total := 0.0
	hasNormal := false
	for _, ft := range types {
		switch ft.Type {
		case FoodNormal, FoodSpeed, FoodShield, FoodAttract:
		default:
			return nil, fmt.Errorf("unknown food type %q", ft.Type)
		}
		if _, dup := t.byType[ft.Type]; dup {
			return nil, fmt.Errorf("duplicate food type %q", ft.Type)
		}
		if ft.MinRadius <= 0 || ft.MaxRadius < ft.MinRadius {
			return nil, fmt.Errorf("food type %q: bad radius range [%v, %v]", ft.Type, ft.MinRadius, ft.MaxRadius)
		}
		t.byType[ft.Type] = ft
		if ft.Type == FoodNormal {
			t.normal = ft
			hasNormal = true
			continue
		}
		if ft.Chance < 0 {
			return nil, fmt.Errorf("food type %q: negative chance", ft.Type)
		}
		total += ft.Chance
		t.bands = append(t.bands, ft)
	}
	if !hasNormal {
		return nil, fmt.Errorf("missing %q food type", FoodNormal)
	}
	if total > 1 {
		return nil, fmt.Errorf("food chances sum to %v, exceeds 1", total)
	}
	return t, nil
}

// DefaultFoodTable returns the built-in distribution: shield 2%, speed 30%,
// attract 10%, remainder normal.
func DefaultFoodTable() *FoodTable {
	t, err := NewFoodTable([]FoodType{
		{Type: FoodShield, Color: "#ef4444", Chance: 0.02, MinRadius: 4, MaxRadius: 10},
		{Type: FoodSpeed, Color: "#22c55e", Chance: 0.30, MinRadius: 4, MaxRadius: 10},
		{Type: FoodAttract, Color: "#3b82f6", Chance: 0.10, MinRadius: 4, MaxRadius: 6},
		{Type: FoodNormal, Color: "#ffd54f", MinRadius: 4, MaxRadius: 10},
	})
	if err != nil {
		panic(err)
	}
	return t
}
