package system

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newRespawns(a *arena) *RespawnSystem {
	return NewRespawnSystem(a.state, a.outbox, a.bus, a.cfg.Arena, zap.NewNop())
}

func TestRespawnAfterDelayKeepsName(t *testing.T) {
	a := newArena(t)
	a.cfg.Arena.RespawnRadius = 12
	a.player("A", "Alice", 500, 500, 30)
	a.player("B", "Bobby", 520, 500, 10)
	NewPlayerCollisionSystem(a.state, a.elim).Update(0)

	sys := newRespawns(a)
	a.state.SetNow(base.Add(1999 * time.Millisecond))
	sys.Update(0)
	if a.state.Player("B") != nil {
		t.Fatal("respawned before the delay")
	}

	a.state.SetNow(base.Add(2 * time.Second))
	sys.Update(0)
	p := a.state.Player("B")
	if p == nil {
		t.Fatal("no respawn after the delay")
	}
	if p.Name != "Bobby" || p.R != 12 {
		t.Fatalf("respawned as %q r=%v", p.Name, p.R)
	}
	if p.Score != 0 || p.Ammo != 0 || p.Target != nil {
		t.Fatalf("respawn kept old state: %+v", p)
	}
}

func TestRespawnSkippedAfterDisconnect(t *testing.T) {
	a := newArena(t)
	a.player("B", "Bob", 500, 500, 10)
	a.elim.Eliminate("B", "A", "collision")
	a.outbox.down["B"] = true

	a.state.SetNow(base.Add(time.Minute))
	newRespawns(a).Update(0)
	if a.state.Player("B") != nil {
		t.Fatal("respawned a disconnected player")
	}
	if a.state.Respawns.Len() != 0 {
		t.Fatal("stale respawn kept in the queue")
	}
}

func TestRespawnNeverDuplicates(t *testing.T) {
	a := newArena(t)
	a.player("B", "Bob", 500, 500, 10)
	a.elim.Eliminate("B", "A", "collision")
	existing := a.player("B", "Other", 700, 700, 15)

	a.state.SetNow(base.Add(time.Minute))
	newRespawns(a).Update(0)
	if a.state.Player("B") != existing || a.state.PlayerCount() != 1 {
		t.Fatal("respawn replaced or duplicated an existing record")
	}
}
