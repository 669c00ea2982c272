package system

import (
	"time"

	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/world"
)

// ProjectileSystem moves arrows, expires them by lifetime or bounds, and
// resolves arrow hits. A hit drops the victim's mass as food, credits the
// shooter with a share of it and eliminates the victim. Phase 2 (Update),
// after MotionSystem.
type ProjectileSystem struct {
	state     *world.State
	cfg       config.ArrowConfig
	spawner   *FoodSpawner
	eliminate *Eliminator
}

func NewProjectileSystem(state *world.State, cfg config.ArrowConfig, spawner *FoodSpawner, eliminate *Eliminator) *ProjectileSystem {
	return &ProjectileSystem{state: state, cfg: cfg, spawner: spawner, eliminate: eliminate}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ProjectileSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	for _, a := range s.state.Arrows() {
		a.Pos = a.Pos.Add(a.Vel.Mul(secs))
		a.TimeLeft -= dt
		if a.TimeLeft <= 0 || !s.state.InBounds(a.Pos) {
			s.state.RemoveArrow(a.ID)
			continue
		}
		if victim := s.firstHit(a); victim != nil {
			s.hit(a, victim)
			s.state.RemoveArrow(a.ID)
		}
	}
}

// firstHit returns the first player (join order) the arrow overlaps, never its shooter.
func (s *ProjectileSystem) firstHit(a *world.Arrow) *world.Player {
	for _, p := range s.state.Players() {
		if p.ID == a.Shooter {
			continue
		}
		reach := p.R + s.cfg.Radius
		d := a.Pos.Sub(p.Pos)
		if d.Dot(d) <= reach*reach {
			return p
		}
	}
	return nil
}

func (s *ProjectileSystem) hit(a *world.Arrow, victim *world.Player) {
	s.spawner.DropAt(victim.Pos, victim.R)
	if shooter := s.state.Player(a.Shooter); shooter != nil {
		shooter.Grow(victim.Mass() * s.cfg.KillMassShare)
	}
	s.eliminate.Eliminate(victim.ID, a.Shooter, event.CauseProjectile)
}
