package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/growarena/server/internal/config"
)

// Arrow is a projectile. It never damages its own shooter.
type Arrow struct {
	ID       int64
	Pos      mgl64.Vec2
	Vel      mgl64.Vec2
	Shooter  string
	TimeLeft time.Duration
}

// SpawnArrow fires from the shooter's edge toward target. It fails without
// side effects when the shooter is gone, has no ammo, or the aim vector is
// shorter than the direction epsilon. Ammo is spent only on success.
func (s *State) SpawnArrow(shooterID string, target mgl64.Vec2, cfg config.ArrowConfig) (*Arrow, bool) {
	shooter := s.Player(shooterID)
	if shooter == nil || shooter.Ammo <= 0 {
		return nil, false
	}
	dir := target.Sub(shooter.Pos)
	dist := dir.Len()
	if dist < cfg.DirectionEpsilon {
		return nil, false
	}
	unit := dir.Mul(1 / dist)

	shooter.Ammo--

	a := &Arrow{
		ID:       s.nextArrowID,
		Pos:      shooter.Pos.Add(unit.Mul(shooter.R)),
		Vel:      unit.Mul(cfg.Speed),
		Shooter:  shooterID,
		TimeLeft: cfg.Lifetime,
	}
	s.nextArrowID++
	s.arrows.set(a.ID, a)
	return a, true
}

func (s *State) RemoveArrow(id int64) *Arrow {
	a, ok := s.arrows.remove(id)
	if !ok {
		return nil
	}
	return a
}

func (s *State) Arrow(id int64) *Arrow {
	a, _ := s.arrows.get(id)
	return a
}

// Arrows returns all live arrows in id order. The slice is a copy.
func (s *State) Arrows() []*Arrow {
	return s.arrows.values()
}

func (s *State) ArrowCount() int {
	return s.arrows.len()
}
