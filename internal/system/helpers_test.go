package system

import (
	"math/rand"
	stdnet "net"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/core/event"
	"github.com/growarena/server/internal/data"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/scripting"
	"github.com/growarena/server/internal/world"
)

var base = time.Unix(1_700_000_000, 0)

type sent struct {
	to  string
	msg any
}

type fakeOutbox struct {
	sent []sent
	down map[string]bool
}

func newFakeOutbox() *fakeOutbox {
	return &fakeOutbox{down: make(map[string]bool)}
}

func (o *fakeOutbox) SendTo(id string, v any) {
	o.sent = append(o.sent, sent{to: id, msg: v})
}

func (o *fakeOutbox) Connected(id string) bool {
	return !o.down[id]
}

func (o *fakeOutbox) to(id string) []any {
	var out []any
	for _, s := range o.sent {
		if s.to == id {
			out = append(out, s.msg)
		}
	}
	return out
}

// arena bundles a state and the collaborators most systems need.
type arena struct {
	cfg     *config.Config
	state   *world.State
	outbox  *fakeOutbox
	bus     *event.Bus
	spawner *FoodSpawner
	effects *EffectEngine
	elim    *Eliminator
}

func newArena(t *testing.T) *arena {
	t.Helper()
	cfg := config.Default()
	cfg.Arena.FoodCount = 0
	state := world.NewState(cfg.Arena.Width, cfg.Arena.Height, rand.New(rand.NewSource(7)))
	state.SetNow(base)
	outbox := newFakeOutbox()
	bus := event.NewBus()
	return &arena{
		cfg:     cfg,
		state:   state,
		outbox:  outbox,
		bus:     bus,
		spawner: NewFoodSpawner(state, data.DefaultFoodTable(), cfg.Arena, cfg.Drop, scripting.Defaults{}),
		effects: NewEffectEngine(cfg.Effects, cfg.Arena.FoodReferenceRadius, outbox),
		elim:    NewEliminator(state, outbox, bus, cfg.Arena.RespawnDelay),
	}
}

func (a *arena) player(id, name string, x, y, r float64) *world.Player {
	p := a.state.NewPlayer(id, name, r, r)
	p.Pos = mgl64.Vec2{x, y}
	a.state.AddPlayer(p)
	return p
}

func (a *arena) food(x, y, r, value float64, typ string) *world.Food {
	ft, _ := data.DefaultFoodTable().Get(typ)
	return a.state.SpawnFood(mgl64.Vec2{x, y}, r, value, typ, ft.Color)
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func deadMessages(msgs []any) []packet.Dead {
	var out []packet.Dead
	for _, m := range msgs {
		if d, ok := m.(packet.Dead); ok {
			out = append(out, d)
		}
	}
	return out
}

// stubConn satisfies net.Conn for sessions that never start their goroutines.
type stubConn struct{}

func (stubConn) ReadMessage() (int, []byte, error)         { return 0, nil, stdnet.ErrClosed }
func (stubConn) WriteMessage(int, []byte) error            { return nil }
func (stubConn) WriteControl(int, []byte, time.Time) error { return nil }
func (stubConn) SetReadDeadline(time.Time) error           { return nil }
func (stubConn) SetWriteDeadline(time.Time) error          { return nil }
func (stubConn) SetReadLimit(int64)                        {}
func (stubConn) SetPongHandler(func(string) error)         {}
func (stubConn) RemoteAddr() stdnet.Addr                   { return &stdnet.TCPAddr{} }
func (stubConn) Close() error                              { return nil }
