package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/growarena/server/internal/config"
	"github.com/growarena/server/internal/net/packet"
	"go.uber.org/zap"
)

// Server accepts websocket connections and creates Sessions.
// New sessions are handed to the game loop over a channel; dead ones are
// noticed by the game loop through Session.IsClosed.
type Server struct {
	cfg      config.NetworkConfig
	listener net.Listener
	http     *http.Server
	upgrader websocket.Upgrader
	newConns chan *Session
	log      *zap.Logger
}

// NewServer binds the listener. Call Serve to start accepting.
func NewServer(cfg config.NetworkConfig, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.BindAddress, err)
	}
	s := &Server{
		cfg:      cfg,
		listener: ln,
		newConns: make(chan *Session, 64),
		log:      log,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.http = &http.Server{Handler: s.Handler()}
	return s, nil
}

// Handler returns the HTTP routes: the websocket endpoint plus static files
// when the static directory exists.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.WSPath, s.handleWS)
	if st, err := os.Stat(s.cfg.StaticDir); err == nil && st.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return mux
}

// Serve blocks until Shutdown.
func (s *Server) Serve() error {
	err := s.http.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	codec, err := packet.CodecByName(q.Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	sess := NewSession(conn, id, codec, s.sessionConfig(), s.log)
	sess.Spectator = q.Get("spectate") == "1"
	sess.Start()

	s.log.Info("connection accepted",
		zap.String("session", id),
		zap.String("ip", sess.IP),
		zap.String("codec", codec.Name()),
		zap.Bool("spectator", sess.Spectator),
	)

	select {
	case s.newConns <- sess:
	default:
		s.log.Warn("connection queue full, rejecting", zap.String("session", id))
		sess.Close()
	}
}

func (s *Server) sessionConfig() SessionConfig {
	return SessionConfig{
		InQueueSize:      s.cfg.InQueueSize,
		OutQueueSize:     s.cfg.OutQueueSize,
		PacketsPerSecond: s.cfg.PacketsPerSecond,
		WriteTimeout:     s.cfg.WriteTimeout,
		ReadTimeout:      s.cfg.ReadTimeout,
		PingInterval:     s.cfg.PingInterval,
	}
}

// checkOrigin accepts requests without an Origin header, same-host and
// localhost origins, and anything listed in allowed_origins ("*" allows all).
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(s.cfg.AllowedOrigins, "*") || slices.Contains(s.cfg.AllowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
