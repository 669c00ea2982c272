package system

import (
	"time"

	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
)

// EventDispatchSystem swaps the bus buffers and delivers last tick's events.
// Phase 1 (PreUpdate), registered before EffectExpirySystem.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// RegisterSubscribers wires the score keeper and the kill feed.
func RegisterSubscribers(bus *event.Bus, state *world.State, log *zap.Logger) {
	// A kill is credited only if the killer is still alive a tick later.
	event.Subscribe(bus, func(e event.PlayerEliminated) {
		if k := state.Player(e.KillerID); k != nil {
			k.Score++
		}
	})

	event.Subscribe(bus, func(e event.PlayerEliminated) {
		log.Info("player eliminated",
			zap.String("victim", e.VictimID),
			zap.String("victim_name", e.VictimName),
			zap.String("killer", e.KillerID),
			zap.String("killer_name", e.KillerName),
			zap.String("cause", e.Cause),
			zap.Float64("mass", e.VictimMass),
		)
	})

	event.Subscribe(bus, func(e event.PlayerJoined) {
		log.Info("player spawned",
			zap.String("player", e.PlayerID),
			zap.String("name", e.Name),
			zap.Bool("respawn", e.Respawn),
			zap.Int("players", state.PlayerCount()),
		)
	})

	event.Subscribe(bus, func(e event.PlayerDisconnected) {
		log.Info("player disconnected",
			zap.String("player", e.PlayerID),
			zap.Bool("alive", e.Alive),
			zap.Int("players", state.PlayerCount()),
		)
	})
}
