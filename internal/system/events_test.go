package system

import (
	"testing"

	"go.uber.org/zap"
)

func TestScoreCreditedNextTick(t *testing.T) {
	a := newArena(t)
	RegisterSubscribers(a.bus, a.state, zap.NewNop())
	killer := a.player("A", "Alice", 500, 500, 30)
	a.player("B", "Bob", 520, 500, 10)

	NewPlayerCollisionSystem(a.state, a.elim).Update(0)
	if killer.Score != 0 {
		t.Fatal("score credited in the same tick")
	}

	dispatch := NewEventDispatchSystem(a.bus)
	dispatch.Update(0)
	if killer.Score != 1 {
		t.Fatalf("score = %d, want 1", killer.Score)
	}
	dispatch.Update(0)
	if killer.Score != 1 {
		t.Fatalf("score credited twice: %d", killer.Score)
	}
}

func TestScoreSkippedForDeadKiller(t *testing.T) {
	a := newArena(t)
	RegisterSubscribers(a.bus, a.state, zap.NewNop())
	a.player("B", "Bob", 520, 500, 10)
	a.elim.Eliminate("B", "ghost", "projectile")

	NewEventDispatchSystem(a.bus).Update(0)
	if a.state.PlayerCount() != 0 {
		t.Fatal("subscriber created a player")
	}
}
