package limiter

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count int64
	reset time.Time
}

// memoryStore is the process-local counter backend. Counters do not survive
// a restart, which is acceptable for single-instance deployments.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() Store {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock injects the clock so window expiry can be driven
// deterministically in tests.
func NewMemoryStoreWithClock(now func() time.Time) Store {
	return &memoryStore{
		entries: make(map[string]*memoryEntry),
		now:     now,
	}
}

func (s *memoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, ok := s.entries[key]
	if !ok || !entry.reset.After(now) {
		entry = &memoryEntry{
			count: 1,
			reset: now.Add(window),
		}
		s.entries[key] = entry

		return entry.count, entry.reset, nil
	}

	entry.count++

	return entry.count, entry.reset, nil
}
