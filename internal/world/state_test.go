package world

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestState() *State {
	return NewState(3000, 3000, rand.New(rand.NewSource(1)))
}

func TestNewPlayerDefaults(t *testing.T) {
	s := newTestState()
	p := s.NewPlayer("p1", "", 15, 15)
	if p.Name != DefaultName {
		t.Fatalf("name = %q, want %q", p.Name, DefaultName)
	}
	if p.R != 15 || p.Ammo != 0 || p.Target != nil || p.Boosting {
		t.Fatalf("unexpected fresh player: %+v", p)
	}
	if p.Pos.X() < 15 || p.Pos.X() > 2985 || p.Pos.Y() < 15 || p.Pos.Y() > 2985 {
		t.Fatalf("position %v outside margin", p.Pos)
	}
	if !regexp.MustCompile(`^hsl\(\d{1,3},70%,55%\)$`).MatchString(p.Color) {
		t.Fatalf("color = %q", p.Color)
	}
}

func TestPlayersKeepJoinOrder(t *testing.T) {
	s := newTestState()
	for _, id := range []string{"c", "a", "b"} {
		s.AddPlayer(s.NewPlayer(id, "", 15, 15))
	}
	s.RemovePlayer("a")
	s.AddPlayer(s.NewPlayer("a", "", 15, 15))

	got := s.PlayerIDs()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
	if s.PlayerCount() != 3 {
		t.Fatalf("count = %d", s.PlayerCount())
	}
}

func TestRemoveMissingPlayer(t *testing.T) {
	s := newTestState()
	if p := s.RemovePlayer("ghost"); p != nil {
		t.Fatalf("removed %v", p)
	}
}

func TestFoodLifecycle(t *testing.T) {
	s := newTestState()
	a := s.SpawnFood(mgl64.Vec2{100, 100}, 6, 3, "normal", "#ffd54f")
	b := s.SpawnFood(mgl64.Vec2{110, 100}, 6, 3, "speed", "#22c55e")
	s.SpawnFood(mgl64.Vec2{2000, 2000}, 6, 3, "normal", "#ffd54f")
	if b.ID != a.ID+1 {
		t.Fatalf("ids not monotonic: %d, %d", a.ID, b.ID)
	}

	near := s.FoodsNear(mgl64.Vec2{105, 100}, 30)
	if len(near) != 2 || near[0].ID != a.ID || near[1].ID != b.ID {
		t.Fatalf("FoodsNear = %v", near)
	}

	if s.RemoveFood(a.ID) == nil {
		t.Fatal("first removal failed")
	}
	if s.RemoveFood(a.ID) != nil {
		t.Fatal("pellet removed twice")
	}
	if near := s.FoodsNear(mgl64.Vec2{105, 100}, 30); len(near) != 1 {
		t.Fatalf("grid kept removed pellet: %v", near)
	}

	c := s.SpawnFood(mgl64.Vec2{1, 1}, 6, 3, "normal", "#ffd54f")
	if c.ID <= b.ID+1 {
		t.Fatalf("id %d reused", c.ID)
	}
	if s.FoodCount() != 3 {
		t.Fatalf("count = %d", s.FoodCount())
	}
}

func TestFoodConsumedFlag(t *testing.T) {
	s := newTestState()
	if s.TakeFoodConsumed() {
		t.Fatal("flag set on fresh state")
	}
	s.MarkFoodConsumed()
	if !s.TakeFoodConsumed() {
		t.Fatal("flag not reported")
	}
	if s.TakeFoodConsumed() {
		t.Fatal("flag not cleared")
	}
}

func TestClampCircle(t *testing.T) {
	s := newTestState()
	got := s.ClampCircle(mgl64.Vec2{-50, 3100}, 20)
	if got != (mgl64.Vec2{20, 2980}) {
		t.Fatalf("ClampCircle = %v", got)
	}
}
