package net

import (
	"slices"

	"go.uber.org/zap"
)

// SessionStore is the connection registry: connection id to session.
// Accessed only from the game loop goroutine. Iteration follows connect order.
type SessionStore struct {
	byID  map[string]*Session
	order []string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{byID: make(map[string]*Session)}
}

func (st *SessionStore) Add(s *Session) {
	if _, ok := st.byID[s.ID]; !ok {
		st.order = append(st.order, s.ID)
	}
	st.byID[s.ID] = s
}

func (st *SessionStore) Remove(id string) *Session {
	s, ok := st.byID[id]
	if !ok {
		return nil
	}
	delete(st.byID, id)
	if i := slices.Index(st.order, id); i >= 0 {
		st.order = slices.Delete(st.order, i, i+1)
	}
	return s
}

func (st *SessionStore) Get(id string) *Session {
	return st.byID[id]
}

// Connected reports whether id is registered and its session is still open.
func (st *SessionStore) Connected(id string) bool {
	s := st.byID[id]
	return s != nil && !s.IsClosed()
}

// SendTo encodes v for one connection. Unknown or closed ids are ignored;
// an encode failure closes that session only.
func (st *SessionStore) SendTo(id string, v any) {
	s := st.byID[id]
	if s == nil || s.IsClosed() {
		return
	}
	if err := s.SendMessage(v); err != nil {
		s.log.Warn("encode failed, closing session", zap.Error(err))
		s.Close()
	}
}

// All returns the sessions in connect order. The slice is a copy.
func (st *SessionStore) All() []*Session {
	out := make([]*Session, 0, len(st.order))
	for _, id := range st.order {
		out = append(out, st.byID[id])
	}
	return out
}

func (st *SessionStore) Len() int {
	return len(st.order)
}
