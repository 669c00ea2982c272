package net

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/growarena/server/internal/net/packet"
	"go.uber.org/zap"
)

// MaxMessageSize bounds a single inbound frame.
const MaxMessageSize = 4096

// Conn is the subset of *websocket.Conn a Session uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	RemoteAddr() net.Addr
	Close() error
}

// SessionConfig carries the per-connection queue sizes and timings.
type SessionConfig struct {
	InQueueSize      int
	OutQueueSize     int
	PacketsPerSecond int // 0 = unlimited
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
}

// Session represents a single client connection. Network I/O runs in
// dedicated goroutines; game state is accessed only from the game loop.
type Session struct {
	ID        string
	Codec     packet.Codec
	Spectator bool // receives snapshots, never gets a player
	IP        string

	conn Conn
	cfg  SessionConfig

	InQueue  chan []byte // game loop reads frames from here
	OutQueue chan []byte // writer goroutine reads from here

	outBuf [][]byte // buffered frames, flushed by OutputSystem (game loop only)

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	// Per-second packet rate limiter (readLoop goroutine only, no lock needed)
	pktCount   int
	pktResetAt int64

	log *zap.Logger
}

func NewSession(conn Conn, id string, codec packet.Codec, cfg SessionConfig, log *zap.Logger) *Session {
	return &Session{
		ID:       id,
		Codec:    codec,
		IP:       conn.RemoteAddr().String(),
		conn:     conn,
		cfg:      cfg,
		InQueue:  make(chan []byte, cfg.InQueueSize),
		OutQueue: make(chan []byte, cfg.OutQueueSize),
		closeCh:  make(chan struct{}),
		log:      log.With(zap.String("session", id)),
	}
}

// Start launches the reader and writer goroutines.
func (s *Session) Start() {
	go s.readLoop()
	go s.writeLoop()
}

// Send buffers an encoded frame. Nothing is written until FlushOutput.
// Called only from the game loop goroutine. No lock needed on outBuf.
func (s *Session) Send(data []byte) {
	if s.closed.Load() {
		return
	}
	s.outBuf = append(s.outBuf, data)
}

// SendMessage encodes v with the session's codec and buffers it.
func (s *Session) SendMessage(v any) error {
	data, err := s.Codec.Encode(v)
	if err != nil {
		return err
	}
	s.Send(data)
	return nil
}

// Pending returns the number of frames waiting for FlushOutput.
func (s *Session) Pending() int {
	return len(s.outBuf)
}

// FlushOutput drains the output buffer to OutQueue for the writeLoop goroutine.
// Called by OutputSystem once per tick.
// Non-blocking: if OutQueue is full, the session is disconnected (backpressure).
func (s *Session) FlushOutput() {
	for _, data := range s.outBuf {
		select {
		case s.OutQueue <- data:
		default:
			s.log.Warn("output queue full, dropping slow connection")
			s.Close()
			s.outBuf = s.outBuf[:0]
			return
		}
	}
	s.outBuf = s.outBuf[:0]
}

// Close shuts the session down. Safe to call from any goroutine, any number of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.closeCh
}

// readLoop runs in its own goroutine. It reads frames from the websocket and
// pushes them onto InQueue for the game loop to consume.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(MaxMessageSize)
	s.extendReadDeadline()
	s.conn.SetPongHandler(func(string) error {
		s.extendReadDeadline()
		return nil
	})

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}
		s.extendReadDeadline()

		if !s.allowPacket(time.Now().Unix()) {
			s.log.Warn("packet rate exceeded, disconnecting", zap.Int("pps", s.pktCount))
			return
		}

		// Block until InQueue has space or the session closes. Only this
		// client's reader waits.
		select {
		case s.InQueue <- payload:
		case <-s.closeCh:
			return
		}
	}
}

// allowPacket counts one packet against the per-second budget.
func (s *Session) allowPacket(unixSec int64) bool {
	if s.cfg.PacketsPerSecond <= 0 {
		return true
	}
	if unixSec != s.pktResetAt {
		s.pktCount = 0
		s.pktResetAt = unixSec
	}
	s.pktCount++
	return s.pktCount <= s.cfg.PacketsPerSecond
}

func (s *Session) extendReadDeadline() {
	if s.cfg.ReadTimeout > 0 {
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
}

// writeLoop runs in its own goroutine. It writes frames from OutQueue and
// keeps the connection alive with pings.
func (s *Session) writeLoop() {
	defer s.Close()

	var ping <-chan time.Time
	if s.cfg.PingInterval > 0 {
		ticker := time.NewTicker(s.cfg.PingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	msgType := websocket.TextMessage
	if s.Codec.Binary() {
		msgType = websocket.BinaryMessage
	}

	for {
		select {
		case data := <-s.OutQueue:
			s.setWriteDeadline()
			if err := s.conn.WriteMessage(msgType, data); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
		case <-ping:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.cfg.WriteTimeout)); err != nil {
				if !s.closed.Load() {
					s.log.Debug("ping error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) setWriteDeadline() {
	if s.cfg.WriteTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
}
