package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPickUsesCumulativeBands(t *testing.T) {
	tbl := DefaultFoodTable()
	tests := []struct {
		roll float64
		want string
	}{
		{0.0, FoodShield},
		{0.0199, FoodShield},
		{0.021, FoodSpeed},
		{0.319, FoodSpeed},
		{0.321, FoodAttract},
		{0.419, FoodAttract},
		{0.421, FoodNormal},
		{0.999, FoodNormal},
	}
	for _, tt := range tests {
		if got := tbl.Pick(tt.roll).Type; got != tt.want {
			t.Errorf("Pick(%v) = %q, want %q", tt.roll, got, tt.want)
		}
	}
}

func TestAttractHasNarrowerRadius(t *testing.T) {
	tbl := DefaultFoodTable()
	a, ok := tbl.Get(FoodAttract)
	if !ok {
		t.Fatalf("attract type missing")
	}
	n := tbl.Normal()
	if a.MaxRadius >= n.MaxRadius {
		t.Fatalf("attract max radius %v should be below normal %v", a.MaxRadius, n.MaxRadius)
	}
}

func TestMaxRadiusCoversAllTypes(t *testing.T) {
	if got := DefaultFoodTable().MaxRadius(); got != 10 {
		t.Fatalf("MaxRadius = %v, want 10", got)
	}
}

func TestLoadFoodTableShippedFile(t *testing.T) {
	tbl, err := LoadFoodTable(filepath.Join("..", "..", "data", "yaml", "food_types.yaml"))
	if err != nil {
		t.Fatalf("LoadFoodTable: %v", err)
	}
	if tbl.Count() != 4 {
		t.Fatalf("count = %d, want 4", tbl.Count())
	}
	if got := tbl.Pick(0.01).Color; got != "#ef4444" {
		t.Fatalf("shield color = %q", got)
	}
}

func TestNewFoodTableValidation(t *testing.T) {
	tests := []struct {
		name  string
		types []FoodType
	}{
		{"missing normal", []FoodType{{Type: FoodSpeed, Chance: 0.5, MinRadius: 1, MaxRadius: 2}}},
		{"unknown type", []FoodType{{Type: "poison", MinRadius: 1, MaxRadius: 2}, {Type: FoodNormal, MinRadius: 1, MaxRadius: 2}}},
		{"bad radius", []FoodType{{Type: FoodNormal, MinRadius: 5, MaxRadius: 2}}},
		{"over one", []FoodType{
			{Type: FoodSpeed, Chance: 0.7, MinRadius: 1, MaxRadius: 2},
			{Type: FoodShield, Chance: 0.5, MinRadius: 1, MaxRadius: 2},
			{Type: FoodNormal, MinRadius: 1, MaxRadius: 2},
		}},
		{"duplicate", []FoodType{{Type: FoodNormal, MinRadius: 1, MaxRadius: 2}, {Type: FoodNormal, MinRadius: 1, MaxRadius: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFoodTable(tt.types); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFoodTableBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food.yaml")
	if err := os.WriteFile(path, []byte("types: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFoodTable(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
