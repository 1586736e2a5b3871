package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

type fileEntry struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore persists sessions as a flat JSON object keyed by token.
// Every operation is a whole-file read-modify-write held under one mutex,
// so goroutines within this process never interleave a load/save pair.
// There is no cross-process discipline, which the board accepts for its
// single-process deployment.
type FileStore struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
}

func NewFileStore(path string, ttl time.Duration) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{path: path, ttl: ttl}
}

func (s *FileStore) load() (map[string]fileEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]fileEntry{}, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	sessions := map[string]fileEntry{}
	if err := json.Unmarshal(data, &sessions); err != nil {
		// corrupt file: treat as empty
		return map[string]fileEntry{}, nil
	}
	return sessions, nil
}

func (s *FileStore) save(sessions map[string]fileEntry) error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Create(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	now := time.Now()
	sessions[token] = fileEntry{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.save(sessions); err != nil {
		return "", err
	}
	return token, nil
}

func (s *FileStore) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return "", err
	}
	entry, ok := sessions[token]
	if !ok {
		return "", ErrInvalid
	}
	if !entry.ExpiresAt.After(time.Now()) {
		delete(sessions, token)
		_ = s.save(sessions)
		return "", ErrInvalid
	}
	return entry.UserID, nil
}

func (s *FileStore) Destroy(token string) error {
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := sessions[token]; !ok {
		return nil
	}
	delete(sessions, token)
	return s.save(sessions)
}

func (s *FileStore) Extend(token string) error {
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	entry, ok := sessions[token]
	if !ok {
		return nil
	}
	if !entry.ExpiresAt.After(time.Now()) {
		// expired entries are not revived
		delete(sessions, token)
		return s.save(sessions)
	}
	entry.ExpiresAt = time.Now().Add(s.ttl)
	sessions[token] = entry
	return s.save(sessions)
}
