package token

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests. Refresh never reaches the
// network; an expired record without a refresh token still fails the same way
// the file-backed store does.
type MemoryStore struct {
	mu    sync.RWMutex
	creds *Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil, ErrNoCredentials
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *creds
	s.creds = &c
	return nil
}

func (s *MemoryStore) RefreshIfNeeded(_ context.Context, creds *Credentials) (*Credentials, error) {
	if !creds.Expired() {
		return creds, nil
	}
	if creds.RefreshToken == "" {
		return nil, ErrAuthExpired
	}
	return creds, nil
}
