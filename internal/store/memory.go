package store

import (
	"context"
	"sync"

	"attendease/gym-app/internal/domain"
)

// MemoryStore keeps the snapshot in process memory. Used by tests and by
// local development without a database.
type MemoryStore struct {
	mu   sync.Mutex
	data *domain.AppData
}

// NewMemoryStore creates a store pre-loaded with the given snapshot. A nil
// initial snapshot starts from the seed dataset.
func NewMemoryStore(initial *domain.AppData) *MemoryStore {
	if initial == nil {
		initial = SeedData()
	}
	return &MemoryStore{data: initial}
}

func (s *MemoryStore) Load(ctx context.Context) (*domain.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, data *domain.AppData) (*domain.AppData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	return data, nil
}
