package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/growarena/server/internal/config"
)

// Controls is the only surface input handlers get. Every method touches one
// existing player's client-writable fields and is a no-op when the player is
// gone (eliminated or never spawned).
type Controls interface {
	SetTarget(id string, target mgl64.Vec2)
	SetName(id, name string)
	SetBoosting(id string, active bool)
	// Shoot attempts to fire an arrow. It reports whether one was created.
	Shoot(id string, target mgl64.Vec2) bool
	// Position returns the player's centre, or false if there is no player.
	Position(id string) (mgl64.Vec2, bool)
}

type stateControls struct {
	state *State
	arrow config.ArrowConfig
}

// NewControls returns the Controls backed by s.
func NewControls(s *State, arrow config.ArrowConfig) Controls {
	return &stateControls{state: s, arrow: arrow}
}

func (c *stateControls) SetTarget(id string, target mgl64.Vec2) {
	p := c.state.Player(id)
	if p == nil || !finite(target) {
		return
	}
	t := target
	p.Target = &t
}

func (c *stateControls) SetName(id, name string) {
	if p := c.state.Player(id); p != nil {
		p.Name = SanitizeName(name)
	}
}

func (c *stateControls) SetBoosting(id string, active bool) {
	if p := c.state.Player(id); p != nil {
		p.Boosting = active
	}
}

func (c *stateControls) Shoot(id string, target mgl64.Vec2) bool {
	if !finite(target) {
		return false
	}
	_, ok := c.state.SpawnArrow(id, target, c.arrow)
	return ok
}

func (c *stateControls) Position(id string) (mgl64.Vec2, bool) {
	p := c.state.Player(id)
	if p == nil {
		return mgl64.Vec2{}, false
	}
	return p.Pos, true
}

func finite(v mgl64.Vec2) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
