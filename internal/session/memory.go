package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/spec-kit/staff-directory/internal/directory"
)

// MemoryStore is an in-process LRU of session state with a TTL per entry.
type MemoryStore struct {
	cache *expirable.LRU[string, directory.State]
}

// NewMemoryStore creates a store holding at most maxEntries sessions for ttl each.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, directory.State](maxEntries, nil, ttl)}
}

// Load returns the state saved for id, if it has not expired.
func (s *MemoryStore) Load(_ context.Context, id string) (directory.State, bool, error) {
	state, ok := s.cache.Get(id)
	return state, ok, nil
}

// Save stores state for id, evicting the least recently used session when full.
func (s *MemoryStore) Save(_ context.Context, id string, state directory.State) error {
	s.cache.Add(id, state)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
