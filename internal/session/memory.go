package session

import (
	"context"
	"sync"

	"qrmenu/internal/model"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fromFields(s.data[sid]), nil
}

func (s *MemoryStore) Set(_ context.Context, sid, credential string, profile model.Profile) error {
	fields := make(map[string]string, len(entryKeys))
	for k, v := range toFields(credential, profile) {
		if v != "" {
			fields[k] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sid] = fields
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sid)
	return nil
}
