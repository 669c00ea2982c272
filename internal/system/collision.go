package system

import (
	"time"

	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/world"
)

// PlayerCollisionSystem resolves overlapping pairs: the strictly larger player
// absorbs the smaller one's mass unless the smaller one is shielded. Equal radii
// never resolve. Phase 2 (Update), last in the phase.
type PlayerCollisionSystem struct {
	state     *world.State
	eliminate *Eliminator
}

func NewPlayerCollisionSystem(state *world.State, eliminate *Eliminator) *PlayerCollisionSystem {
	return &PlayerCollisionSystem{state: state, eliminate: eliminate}
}

func (s *PlayerCollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PlayerCollisionSystem) Update(_ time.Duration) {
	now := s.state.Now()
	ids := s.state.PlayerIDs()
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			a := s.state.Player(ids[i])
			b := s.state.Player(ids[j])
			if a == nil || b == nil {
				continue
			}
			reach := a.R + b.R
			d := a.Pos.Sub(b.Pos)
			if d.Dot(d) > reach*reach {
				continue
			}
			switch {
			case a.R > b.R && !b.Shielded(now):
				s.absorb(a, b)
			case b.R > a.R && !a.Shielded(now):
				s.absorb(b, a)
			}
		}
	}
}

func (s *PlayerCollisionSystem) absorb(winner, loser *world.Player) {
	winner.SetMass(winner.Mass() + loser.Mass())
	s.eliminate.Eliminate(loser.ID, winner.ID, event.CauseCollision)
}
