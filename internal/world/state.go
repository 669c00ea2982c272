package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// State owns every player, pellet and arrow record.
// Single-goroutine access only (game loop). Structural changes (insert/remove)
// happen from tick systems and the connect/disconnect/respawn paths, all of
// which run on that goroutine. Input handlers reach players only through Controls.
type State struct {
	width  float64
	height float64
	now    time.Time
	rng    *rand.Rand

	players ordered[string, *Player]
	foods   ordered[int64, *Food]
	arrows  ordered[int64, *Arrow]

	foodGrid *FoodGrid

	nextFoodID  int64
	nextArrowID int64

	foodConsumed bool

	Respawns *RespawnQueue
}

// NewState creates an empty arena. A nil rng is seeded from the clock.
func NewState(width, height float64, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &State{
		width:    width,
		height:   height,
		rng:      rng,
		players:  newOrdered[string, *Player](),
		foods:    newOrdered[int64, *Food](),
		arrows:   newOrdered[int64, *Arrow](),
		foodGrid: NewFoodGrid(),
		Respawns: NewRespawnQueue(),
	}
}

func (s *State) Width() float64  { return s.width }
func (s *State) Height() float64 { return s.height }

// Now returns the current tick's time. Every timed effect compares against it.
func (s *State) Now() time.Time { return s.now }

// SetNow is called by the scheduler at the start of each tick.
func (s *State) SetNow(t time.Time) { s.now = t }

func (s *State) Rand() *rand.Rand { return s.rng }

// RandomPosition returns a uniform point at least margin away from every edge.
func (s *State) RandomPosition(margin float64) mgl64.Vec2 {
	return mgl64.Vec2{
		uniform(s.rng, margin, s.width-margin),
		uniform(s.rng, margin, s.height-margin),
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// Uniform returns a value in [lo, hi) from the arena's random source.
func (s *State) Uniform(lo, hi float64) float64 {
	return uniform(s.rng, lo, hi)
}

// NewPlayer builds (but does not insert) a player at a random position.
func (s *State) NewPlayer(id, name string, radius, margin float64) *Player {
	if name == "" {
		name = DefaultName
	}
	return &Player{
		ID:    id,
		Name:  name,
		Pos:   s.RandomPosition(margin),
		R:     radius,
		Color: fmt.Sprintf("hsl(%d,70%%,55%%)", s.rng.Intn(361)),
	}
}

// AddPlayer registers a player. An existing record with the same id is replaced.
func (s *State) AddPlayer(p *Player) {
	s.players.set(p.ID, p)
}

// RemovePlayer removes a player and returns it, or nil if absent.
func (s *State) RemovePlayer(id string) *Player {
	p, ok := s.players.remove(id)
	if !ok {
		return nil
	}
	return p
}

func (s *State) Player(id string) *Player {
	p, _ := s.players.get(id)
	return p
}

// Players returns all players in join order. The slice is a copy.
func (s *State) Players() []*Player {
	return s.players.values()
}

// PlayerIDs returns all player ids in join order.
func (s *State) PlayerIDs() []string {
	return s.players.keyList()
}

func (s *State) PlayerCount() int {
	return s.players.len()
}

// AllPlayers calls fn for every player in join order.
func (s *State) AllPlayers(fn func(p *Player)) {
	for _, p := range s.players.values() {
		fn(p)
	}
}

// InBounds reports whether pos lies inside the map (edges included).
func (s *State) InBounds(pos mgl64.Vec2) bool {
	return pos.X() >= 0 && pos.X() <= s.width && pos.Y() >= 0 && pos.Y() <= s.height
}

// ClampCircle keeps a circle of radius r fully inside the map.
func (s *State) ClampCircle(pos mgl64.Vec2, r float64) mgl64.Vec2 {
	return mgl64.Vec2{
		clamp(pos.X(), r, s.width-r),
		clamp(pos.Y(), r, s.height-r),
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
