package system

import (
	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/data"
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/scripting"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
)

// Deps is everything the tick pipeline is built from.
type Deps struct {
	Config      *config.Config
	State       *world.State
	Store       *net.SessionStore
	Registry    *packet.Registry
	Bus         *event.Bus
	Foods       *data.FoodTable
	Formulas    scripting.Formulas
	NewSessions <-chan *net.Session
	Log         *zap.Logger
}

// RegisterAll registers every tick system in pipeline order and wires the
// event subscribers. The returned spawner seeds the initial food population.
func RegisterAll(runner *coresys.Runner, d Deps) *FoodSpawner {
	cfg := d.Config
	spawner := NewFoodSpawner(d.State, d.Foods, cfg.Arena, cfg.Drop, d.Formulas)
	effects := NewEffectEngine(cfg.Effects, cfg.Arena.FoodReferenceRadius, d.Store)
	elim := NewEliminator(d.State, d.Store, d.Bus, cfg.Arena.RespawnDelay)

	RegisterSubscribers(d.Bus, d.State, d.Log)

	// Phase 0: input
	runner.Register(NewInputSystem(d.NewSessions, d.Registry, d.Store, d.State, d.Bus, cfg, d.Log))

	// Phase 1: events, then effect expiry
	runner.Register(NewEventDispatchSystem(d.Bus))
	runner.Register(NewEffectExpirySystem(d.State))

	// Phase 2: simulation, order matters
	runner.Register(NewMotionSystem(d.State, cfg, d.Formulas))
	runner.Register(NewProjectileSystem(d.State, cfg.Arrow, spawner, elim))
	runner.Register(NewFoodCollisionSystem(d.State, spawner, effects))
	runner.Register(NewFoodReplenishSystem(d.State, spawner))
	runner.Register(NewPlayerCollisionSystem(d.State, elim))

	// Phase 3: respawns
	runner.Register(NewRespawnSystem(d.State, d.Store, d.Bus, cfg.Arena, d.Log))

	// Phase 4: snapshot broadcast
	runner.Register(NewOutputSystem(d.State, d.Store, d.Log))

	return spawner
}
