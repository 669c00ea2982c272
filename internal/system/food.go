package system

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/growarena/server/internal/config"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/data"
	"github.com/growarena/server/internal/scripting"
	"github.com/growarena/server/internal/world"
)

// FoodSpawner creates pellets: the regular population and death drops.
type FoodSpawner struct {
	state    *world.State
	table    *data.FoodTable
	arena    config.ArenaConfig
	drop     config.DropConfig
	formulas scripting.Formulas
}

func NewFoodSpawner(state *world.State, table *data.FoodTable, arena config.ArenaConfig, drop config.DropConfig, formulas scripting.Formulas) *FoodSpawner {
	return &FoodSpawner{state: state, table: table, arena: arena, drop: drop, formulas: formulas}
}

// EnsurePopulation tops the pellet set up to the configured food count.
// Each pellet's type comes from one roll over the cumulative bands.
func (fs *FoodSpawner) EnsurePopulation() int {
	added := 0
	for fs.state.FoodCount() < fs.arena.FoodCount {
		pos := fs.state.RandomPosition(0)
		ft := fs.table.Pick(fs.state.Rand().Float64())
		r := fs.state.Uniform(ft.MinRadius, ft.MaxRadius)
		value := fs.arena.FoodValue * world.AreaRatio(r, fs.arena.FoodReferenceRadius)
		fs.state.SpawnFood(pos, r, value, ft.Type, ft.Color)
		added++
	}
	return added
}

// DropAt scatters the mass of a player of radius r around pos as normal pellets
// of equal value.
func (fs *FoodSpawner) DropAt(pos mgl64.Vec2, r float64) int {
	n := fs.formulas.DropPieces(scripting.DropContext{
		Radius:    r,
		Divisor:   fs.drop.RadiusDivisor,
		MinPieces: fs.drop.MinPieces,
		MaxPieces: fs.drop.MaxPieces,
	})
	if n <= 0 {
		return 0
	}
	share := world.MassFromRadius(r) / float64(n)
	normal := fs.table.Normal()
	pr := clamp(world.RadiusFromMass(share), normal.MinRadius, normal.MaxRadius)
	m := fs.drop.EdgeMargin
	w, h := fs.state.Width(), fs.state.Height()

	for i := 0; i < n; i++ {
		angle := fs.state.Uniform(0, 2*math.Pi)
		dist := fs.state.Uniform(0, r*fs.drop.ScatterFactor)
		at := mgl64.Vec2{
			clamp(pos.X()+dist*math.Cos(angle), m, w-m),
			clamp(pos.Y()+dist*math.Sin(angle), m, h-m),
		}
		fs.state.SpawnFood(at, pr, share, data.FoodNormal, normal.Color)
	}
	return n
}

// MaxFoodRadius bounds every pellet radius, spawned or dropped.
func (fs *FoodSpawner) MaxFoodRadius() float64 {
	return fs.table.MaxRadius()
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

// FoodCollisionSystem lets players eat pellets within their capture radius
// (own radius + pellet radius + active attraction). Earlier-joined players get
// first claim; a pellet is eaten at most once. Phase 2 (Update).
type FoodCollisionSystem struct {
	state   *world.State
	spawner *FoodSpawner
	effects *EffectEngine
}

func NewFoodCollisionSystem(state *world.State, spawner *FoodSpawner, effects *EffectEngine) *FoodCollisionSystem {
	return &FoodCollisionSystem{state: state, spawner: spawner, effects: effects}
}

func (s *FoodCollisionSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *FoodCollisionSystem) Update(_ time.Duration) {
	now := s.state.Now()
	maxFood := s.spawner.MaxFoodRadius()
	for _, p := range s.state.Players() {
		extra := p.ActiveAttractRange(now)
		// Growth widens the reach, so search again until it stops growing.
		searched := -1.0
		for reach := p.R + extra + maxFood; reach > searched; reach = p.R + extra + maxFood {
			searched = reach
			s.eat(p, s.state.FoodsNear(p.Pos, reach), extra, now)
		}
	}
}

// eat captures every candidate within p's current capture radius.
func (s *FoodCollisionSystem) eat(p *world.Player, candidates []*world.Food, extra float64, now time.Time) {
	for _, f := range candidates {
		reach := p.R + f.R + extra
		d := p.Pos.Sub(f.Pos)
		if d.Dot(d) > reach*reach {
			continue
		}
		if s.state.RemoveFood(f.ID) == nil {
			continue
		}
		s.effects.Apply(p, f, now)
		p.Grow(f.Value)
		s.state.MarkFoodConsumed()
	}
}

// FoodReplenishSystem refills the pellet population after any tick in which
// food was eaten. Phase 2 (Update), after FoodCollisionSystem.
type FoodReplenishSystem struct {
	state   *world.State
	spawner *FoodSpawner
}

func NewFoodReplenishSystem(state *world.State, spawner *FoodSpawner) *FoodReplenishSystem {
	return &FoodReplenishSystem{state: state, spawner: spawner}
}

func (s *FoodReplenishSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *FoodReplenishSystem) Update(_ time.Duration) {
	if s.state.TakeFoodConsumed() {
		s.spawner.EnsurePopulation()
	}
}
