package system

import (
	"time"

	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/core/event"
	coresys "github.com/growarena/server/internal/core/system"
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
)

// InputSystem admits new sessions, tears down closed ones, and drains every
// session's inbound queue through the packet registry. This is the only place
// handlers run, so all client writes land on the game loop. Phase 0 (Input).
type InputSystem struct {
	newSessions <-chan *net.Session
	registry    *packet.Registry
	store       *net.SessionStore
	state       *world.State
	bus         *event.Bus
	arena       config.ArenaConfig
	maxPerTick  int
	log         *zap.Logger
}

func NewInputSystem(
	newSessions <-chan *net.Session,
	registry *packet.Registry,
	store *net.SessionStore,
	state *world.State,
	bus *event.Bus,
	cfg *config.Config,
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		newSessions: newSessions,
		registry:    registry,
		store:       store,
		state:       state,
		bus:         bus,
		arena:       cfg.Arena,
		maxPerTick:  cfg.Network.MaxPacketsPerTick,
		log:         log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	// Accept new sessions
	for {
		select {
		case sess := <-s.newSessions:
			s.handleConnect(sess)
			continue
		default:
		}
		break
	}

	// Drain frames from each session (up to maxPerTick per session)
	for _, sess := range s.store.All() {
		if sess.IsClosed() {
			s.handleDisconnect(sess)
			continue
		}
		for i := 0; i < s.maxPerTick; i++ {
			select {
			case frame := <-sess.InQueue:
				if err := s.registry.Dispatch(sess, sess.Codec, frame); err != nil {
					s.log.Debug("message dropped",
						zap.String("session", sess.ID),
						zap.Error(err),
					)
				}
				continue
			default:
			}
			break
		}
	}
}

// handleConnect registers the session, spawns its first player unless it is a
// spectator, and queues the init message.
func (s *InputSystem) handleConnect(sess *net.Session) {
	if sess.IsClosed() {
		return
	}
	s.store.Add(sess)
	if !sess.Spectator {
		p := s.state.NewPlayer(sess.ID, world.DefaultName, s.arena.InitialRadius, s.arena.InitialRadius)
		s.state.AddPlayer(p)
		event.Emit(s.bus, event.PlayerJoined{PlayerID: p.ID, Name: p.Name})
	}
	if err := sess.SendMessage(packet.NewInit(sess.ID, s.state.Width(), s.state.Height())); err != nil {
		s.log.Warn("init encode failed", zap.String("session", sess.ID), zap.Error(err))
		sess.Close()
	}
}

// handleDisconnect removes the player (if any) and the registry entry. A
// pending respawn for this id then fails its liveness check.
func (s *InputSystem) handleDisconnect(sess *net.Session) {
	alive := s.state.RemovePlayer(sess.ID) != nil
	s.store.Remove(sess.ID)
	event.Emit(s.bus, event.PlayerDisconnected{PlayerID: sess.ID, Alive: alive})
}
