package history

import (
	"context"
	"sync"
)

// MemoryStore keeps draws in memory with a bounded capacity: once full,
// the oldest draws are dropped. It backs the CLI and tests.
type MemoryStore struct {
	mu    sync.Mutex
	draws []Draw
	cap   int
}

// NewMemoryStore creates a memory store holding at most capacity draws.
// A non-positive capacity gets a reasonable default.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{cap: capacity}
}

// Record appends a draw, evicting the oldest when at capacity.
func (s *MemoryStore) Record(ctx context.Context, draw Draw) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draws = append(s.draws, draw)
	if len(s.draws) > s.cap {
		s.draws = s.draws[len(s.draws)-s.cap:]
	}
	return nil
}

// Recent returns up to limit draws, newest first.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]Draw, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.draws)
	if limit > n {
		limit = n
	}
	out := make([]Draw, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.draws[i])
	}
	return out, nil
}

// Close does nothing for a memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
