package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type memEntry struct {
	userID    string
	expiresAt time.Time
}

// Memory is a map-backed store for tests and single-process dev runs.
// The mutex covers each read-modify-write; the server runs handlers on
// separate goroutines.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memEntry
}

func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, sessions: make(map[string]memEntry)}
}

func (s *Memory) Create(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.sessions[token] = memEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *Memory) Resolve(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return "", ErrInvalid
	}
	if !entry.expiresAt.After(time.Now()) {
		delete(s.sessions, token)
		return "", ErrInvalid
	}
	return entry.userID, nil
}

func (s *Memory) Destroy(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *Memory) Extend(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if !entry.expiresAt.After(time.Now()) {
		// expired entries are not revived
		delete(s.sessions, token)
		return nil
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	s.sessions[token] = entry
	return nil
}
