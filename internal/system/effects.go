package system

import (
	"math"
	"time"

	"github.com/growarena/server/internal/config"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/data"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/world"
)

// EffectEngine applies power-up pellets to the player that ate them.
// Every effect scales with the pellet's own area relative to the reference pellet.
type EffectEngine struct {
	cfg       config.EffectsConfig
	refRadius float64
	outbox    Outbox
}

func NewEffectEngine(cfg config.EffectsConfig, refRadius float64, outbox Outbox) *EffectEngine {
	return &EffectEngine{cfg: cfg, refRadius: refRadius, outbox: outbox}
}

// Apply updates p's effect fields for food f at time now and notifies the
// owning connection. Normal food has no effect.
func (e *EffectEngine) Apply(p *world.Player, f *world.Food, now time.Time) {
	ratio := world.AreaRatio(f.R, e.refRadius)
	switch f.Type {
	case data.FoodSpeed:
		p.SpeedStacks += ratio
		p.SpeedUntil = now.Add(e.cfg.SpeedDuration)
		e.outbox.SendTo(p.ID, packet.NewSpeedEffect(p.SpeedStacks, e.cfg.SpeedDuration.Seconds()))

	case data.FoodShield:
		d := time.Duration(float64(e.cfg.ShieldDuration) * ratio)
		p.InvUntil = now.Add(d)
		p.Ammo += max(1, int(math.Floor(e.cfg.ShieldAmmoPerArea*ratio)))
		e.outbox.SendTo(p.ID, packet.NewShieldEffect(p.Ammo, d.Seconds()))

	case data.FoodAttract:
		p.AttractRange += e.cfg.AttractRangePerUnit * ratio
		p.AttractUntil = now.Add(e.cfg.AttractDuration)
		e.outbox.SendTo(p.ID, packet.NewAttractEffect(p.AttractRange, e.cfg.AttractDuration.Seconds()))
	}
}

// EffectExpirySystem resets speed stacks and attraction range once their
// timers lapse. Runs before motion so expired bonuses never apply. Phase 1 (PreUpdate).
type EffectExpirySystem struct {
	state *world.State
}

func NewEffectExpirySystem(state *world.State) *EffectExpirySystem {
	return &EffectExpirySystem{state: state}
}

func (s *EffectExpirySystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EffectExpirySystem) Update(_ time.Duration) {
	now := s.state.Now()
	s.state.AllPlayers(func(p *world.Player) {
		if !p.SpeedActive(now) && p.SpeedStacks > 0 {
			p.SpeedStacks = 0
		}
		if !p.AttractActive(now) && p.AttractRange > 0 {
			p.AttractRange = 0
		}
	})
}
