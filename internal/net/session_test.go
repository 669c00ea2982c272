package net

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/growarena/server/internal/net/packet"
	"go.uber.org/zap"
)

func testSessionConfig() SessionConfig {
	return SessionConfig{
		InQueueSize:  4,
		OutQueueSize: 2,
		WriteTimeout: time.Second,
		ReadTimeout:  time.Second,
	}
}

func TestSessionFlushOverflowCloses(t *testing.T) {
	conn := newFakeConn()
	s := NewSession(conn, "s1", packet.JSONCodec{}, testSessionConfig(), zap.NewNop())

	s.Send([]byte("a"))
	s.Send([]byte("b"))
	s.Send([]byte("c"))
	s.FlushOutput()

	if !s.IsClosed() {
		t.Fatal("session survived a full output queue")
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d", s.Pending())
	}
	s.Send([]byte("d"))
	if s.Pending() != 0 {
		t.Fatal("closed session buffered a frame")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	conn := newFakeConn()
	s := NewSession(conn, "s1", packet.JSONCodec{}, testSessionConfig(), zap.NewNop())
	s.Start()
	defer s.Close()

	conn.reads <- []byte(`{"type":"boost","active":true}`)
	select {
	case got := <-s.InQueue:
		if string(got) != `{"type":"boost","active":true}` {
			t.Fatalf("InQueue got %s", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame never reached InQueue")
	}

	if err := s.SendMessage(packet.NewDead("k", "Guest")); err != nil {
		t.Fatal(err)
	}
	s.FlushOutput()

	deadline := time.Now().Add(2 * time.Second)
	for len(conn.writes()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("frame never written")
		}
		time.Sleep(5 * time.Millisecond)
	}
	conn.mu.Lock()
	mt := conn.types[0]
	conn.mu.Unlock()
	if mt != websocket.TextMessage {
		t.Fatalf("message type = %d", mt)
	}
}

func TestSessionRateLimit(t *testing.T) {
	cfg := testSessionConfig()
	cfg.PacketsPerSecond = 2
	s := NewSession(newFakeConn(), "s1", packet.JSONCodec{}, cfg, zap.NewNop())

	if !s.allowPacket(100) || !s.allowPacket(100) {
		t.Fatal("budget rejected early")
	}
	if s.allowPacket(100) {
		t.Fatal("third packet in the same second allowed")
	}
	if !s.allowPacket(101) {
		t.Fatal("budget not reset on the next second")
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	conn := newFakeConn()
	s := NewSession(conn, "s1", packet.JSONCodec{}, testSessionConfig(), zap.NewNop())
	s.Close()
	s.Close()
	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestSessionStore(t *testing.T) {
	st := NewSessionStore()
	a := NewSession(newFakeConn(), "a", packet.JSONCodec{}, testSessionConfig(), zap.NewNop())
	b := NewSession(newFakeConn(), "b", packet.JSONCodec{}, testSessionConfig(), zap.NewNop())
	st.Add(a)
	st.Add(b)

	if !st.Connected("a") || st.Connected("zzz") {
		t.Fatal("Connected wrong")
	}
	st.SendTo("a", packet.NewDead("b", "Bob"))
	st.SendTo("zzz", packet.NewDead("b", "Bob"))
	if a.Pending() != 1 || b.Pending() != 0 {
		t.Fatalf("pending a=%d b=%d", a.Pending(), b.Pending())
	}

	a.Close()
	if st.Connected("a") {
		t.Fatal("closed session reported connected")
	}
	st.SendTo("a", packet.NewDead("b", "Bob"))

	if st.Remove("a") != a || st.Remove("a") != nil {
		t.Fatal("Remove wrong")
	}
	all := st.All()
	if len(all) != 1 || all[0] != b || st.Len() != 1 {
		t.Fatalf("All = %v", all)
	}
}
