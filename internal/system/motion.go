package system

import (
	"time"

	"github.com/growarena/server/internal/config"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/scripting"
	"github.com/growarena/server/internal/world"
)

// MotionSystem drains boost mass and steps every player toward its target.
// Phase 2 (Update), first in the phase.
type MotionSystem struct {
	state    *world.State
	arena    config.ArenaConfig
	boost    config.BoostConfig
	effects  config.EffectsConfig
	formulas scripting.Formulas
}

func NewMotionSystem(state *world.State, cfg *config.Config, formulas scripting.Formulas) *MotionSystem {
	return &MotionSystem{
		state:    state,
		arena:    cfg.Arena,
		boost:    cfg.Boost,
		effects:  cfg.Effects,
		formulas: formulas,
	}
}

func (s *MotionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MotionSystem) Update(dt time.Duration) {
	now := s.state.Now()
	secs := dt.Seconds()
	minMass := world.MassFromRadius(s.boost.MinRadius)

	s.state.AllPlayers(func(p *world.Player) {
		if p.Boosting {
			if p.R > s.boost.MinRadius {
				if m := p.Mass() - s.boost.MassCost*secs; m > minMass {
					p.SetMass(m)
				} else {
					// Floor at the minimum boost mass; radius(minMass) is MinRadius.
					p.R = s.boost.MinRadius
				}
			} else {
				p.Boosting = false
			}
		}

		if p.Target == nil {
			return
		}
		target := *p.Target
		d := target.Sub(p.Pos)
		dist := d.Len()
		if dist <= s.arena.MoveEpsilon {
			return
		}

		mul := 1.0
		if p.SpeedActive(now) {
			mul += s.effects.SpeedStackBonus * p.SpeedStacks
		}
		if p.Boosting {
			mul *= s.boost.SpeedMultiplier
		}
		speed := s.formulas.MoveSpeed(scripting.MoveContext{
			Mass:       p.Mass(),
			BaseSpeed:  s.arena.MoveSpeed,
			Decay:      s.arena.SpeedDecay,
			Multiplier: mul,
		})

		step := speed * secs
		if step >= dist {
			p.Pos = target
		} else {
			p.Pos = p.Pos.Add(d.Mul(step / dist))
		}
		p.Pos = s.state.ClampCircle(p.Pos, p.R)
	})
}
