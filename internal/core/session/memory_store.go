package session

import (
	"context"
	"sync"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

// MemoryStore is an in-process ports.SessionStore. It backs tests and serves
// as the degraded mode when the durable store is unavailable (sessions are
// then lost on restart).
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.sessions[s.Token]
	if exists {
		if s.Generation != current.Generation+1 {
			return domain.ErrStaleSession
		}
	} else if s.Generation != 1 {
		return domain.ErrStaleSession
	}

	m.sessions[s.Token] = *s
	return nil
}

func (m *MemoryStore) Load(_ context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copy := s
	return &copy, nil
}

func (m *MemoryStore) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Len reports the number of stored sessions. Intended for tests.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
