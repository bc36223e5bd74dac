package rate_limiter

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     int64
	expiresAt time.Time
}

// InMemoryCounterStore implements CounterStore without redis. Used by tests
// and as a fallback when no cache store is configured.
type InMemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewInMemoryCounterStore() *InMemoryCounterStore {
	return &InMemoryCounterStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// SetClock overrides the store's clock, letting tests expire windows without
// sleeping.
func (s *InMemoryCounterStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *InMemoryCounterStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return 0, false, nil
	}
	return e.value, true, nil
}

func (s *InMemoryCounterStore) SetEx(_ context.Context, key string, value int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *InMemoryCounterStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &memoryEntry{expiresAt: s.now().Add(24 * time.Hour)}
		s.entries[key] = e
	}
	e.value++
	return e.value, nil
}
