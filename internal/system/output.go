package system

import (
	"time"

	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
)

// OutputSystem builds the full snapshot once, encodes it once per codec in
// use, queues it on every open session and flushes all output. A session whose
// queue is full is closed by FlushOutput and torn down next tick; the others
// are unaffected. Phase 4 (Output).
type OutputSystem struct {
	state *world.State
	store *net.SessionStore
	log   *zap.Logger
}

func NewOutputSystem(state *world.State, store *net.SessionStore, log *zap.Logger) *OutputSystem {
	return &OutputSystem{state: state, store: store, log: log}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	sessions := s.store.All()
	if len(sessions) == 0 {
		return
	}
	snap := BuildSnapshot(s.state)
	encoded := make(map[string][]byte, 2)

	for _, sess := range sessions {
		if sess.IsClosed() {
			continue
		}
		name := sess.Codec.Name()
		data, ok := encoded[name]
		if !ok {
			var err error
			data, err = sess.Codec.Encode(snap)
			if err != nil {
				s.log.Error("snapshot encode failed", zap.String("codec", name), zap.Error(err))
				continue
			}
			encoded[name] = data
		}
		sess.Send(data)
		sess.FlushOutput()
	}
}

// BuildSnapshot captures every player, pellet and arrow at the current tick.
func BuildSnapshot(state *world.State) packet.State {
	now := state.Now()
	players := state.Players()
	foods := state.Foods()
	arrows := state.Arrows()

	snap := packet.State{
		Type:    packet.TypeState,
		Players: make([]packet.PlayerView, 0, len(players)),
		Foods:   make([]packet.FoodView, 0, len(foods)),
		Arrows:  make([]packet.ArrowView, 0, len(arrows)),
	}
	for _, p := range players {
		snap.Players = append(snap.Players, packet.PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			X:            p.Pos.X(),
			Y:            p.Pos.Y(),
			R:            p.R,
			Color:        p.Color,
			Score:        p.Score,
			Boosting:     p.Boosting,
			Ammo:         p.Ammo,
			Shielded:     p.Shielded(now),
			SpeedStacks:  p.SpeedStacks,
			AttractRange: p.AttractRange,
		})
	}
	for _, f := range foods {
		snap.Foods = append(snap.Foods, packet.FoodView{
			ID:    f.ID,
			X:     f.Pos.X(),
			Y:     f.Pos.Y(),
			R:     f.R,
			Type:  f.Type,
			Color: f.Color,
			Value: f.Value,
		})
	}
	for _, a := range arrows {
		snap.Arrows = append(snap.Arrows, packet.ArrowView{
			ID:       a.ID,
			X:        a.Pos.X(),
			Y:        a.Pos.Y(),
			VX:       a.Vel.X(),
			VY:       a.Vel.Y(),
			Shooter:  a.Shooter,
			TimeLeft: a.TimeLeft.Seconds(),
		})
	}
	return snap
}
