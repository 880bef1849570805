package tokenstore

import "sync"

// MemoryStore is an in-process slot for tests and ephemeral sessions that
// should not survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore builds an empty in-memory slot, optionally pre-seeded.
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
