package system

import (
	"time"

	"github.com/growarena/server/internal/core/event"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/world"
)

// Eliminator moves a player from alive to eliminated: it tells the victim who
// got them, removes the record and schedules the respawn under the same name.
type Eliminator struct {
	state  *world.State
	outbox Outbox
	bus    *event.Bus
	delay  time.Duration
}

func NewEliminator(state *world.State, outbox Outbox, bus *event.Bus, respawnDelay time.Duration) *Eliminator {
	return &Eliminator{state: state, outbox: outbox, bus: bus, delay: respawnDelay}
}

// Eliminate removes victimID, crediting killerID. No-op if the victim is already gone.
func (e *Eliminator) Eliminate(victimID, killerID, cause string) {
	victim := e.state.Player(victimID)
	if victim == nil {
		return
	}

	killerName := world.DefaultName
	if k := e.state.Player(killerID); k != nil && k.Name != "" {
		killerName = k.Name
	}
	e.outbox.SendTo(victimID, packet.NewDead(killerID, killerName))

	mass := victim.Mass()
	name := victim.Name
	e.state.RemovePlayer(victimID)
	e.state.Respawns.Schedule(victimID, name, e.state.Now().Add(e.delay))

	event.Emit(e.bus, event.PlayerEliminated{
		VictimID:   victimID,
		VictimName: name,
		KillerID:   killerID,
		KillerName: killerName,
		Cause:      cause,
		VictimMass: mass,
	})
}
