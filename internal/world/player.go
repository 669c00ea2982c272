package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultName is used whenever a display name sanitizes to nothing.
const DefaultName = "Guest"

// Player is one live organism. A connection id cycles through many Player
// lifetimes; the record is removed the instant the player is eliminated.
// Accessed only from the game loop goroutine.
type Player struct {
	ID    string
	Name  string
	Pos   mgl64.Vec2
	R     float64 // always RadiusFromMass of the accumulated mass
	Color string
	Score int

	// Target is replaced as a whole, never written per axis. nil = idle.
	Target *mgl64.Vec2

	Boosting bool
	Ammo     int

	SpeedStacks  float64
	SpeedUntil   time.Time
	InvUntil     time.Time
	AttractRange float64
	AttractUntil time.Time
}

// Mass returns the player's accumulated mass.
func (p *Player) Mass() float64 {
	return MassFromRadius(p.R)
}

// SetMass sets the radius from a new mass.
func (p *Player) SetMass(m float64) {
	p.R = RadiusFromMass(m)
}

// Grow adds mass (negative shrinks).
func (p *Player) Grow(dm float64) {
	p.SetMass(p.Mass() + dm)
}

func (p *Player) Shielded(now time.Time) bool {
	return p.InvUntil.After(now)
}

func (p *Player) SpeedActive(now time.Time) bool {
	return p.SpeedUntil.After(now)
}

func (p *Player) AttractActive(now time.Time) bool {
	return p.AttractUntil.After(now)
}

// ActiveAttractRange returns the attraction bonus, or 0 once expired.
func (p *Player) ActiveAttractRange(now time.Time) float64 {
	if p.AttractActive(now) {
		return p.AttractRange
	}
	return 0
}
