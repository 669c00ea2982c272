package system

import (
	"time"

	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
)

// RespawnSystem brings eliminated players back once their delay has passed.
// A respawn fires only if the connection is still live and no player record
// exists for it; otherwise it is dropped. Phase 3 (PostUpdate).
type RespawnSystem struct {
	state  *world.State
	outbox Outbox
	bus    *event.Bus
	arena  config.ArenaConfig
	log    *zap.Logger
}

func NewRespawnSystem(state *world.State, outbox Outbox, bus *event.Bus, arena config.ArenaConfig, log *zap.Logger) *RespawnSystem {
	return &RespawnSystem{state: state, outbox: outbox, bus: bus, arena: arena, log: log}
}

func (s *RespawnSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RespawnSystem) Update(_ time.Duration) {
	for _, r := range s.state.Respawns.PopDue(s.state.Now()) {
		if !s.outbox.Connected(r.ID) || s.state.Player(r.ID) != nil {
			s.log.Debug("respawn dropped", zap.String("player", r.ID))
			continue
		}
		p := s.state.NewPlayer(r.ID, r.Name, s.arena.RespawnRadius, s.arena.InitialRadius)
		s.state.AddPlayer(p)
		event.Emit(s.bus, event.PlayerJoined{PlayerID: p.ID, Name: p.Name, Respawn: true})
	}
}
