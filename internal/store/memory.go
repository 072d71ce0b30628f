package store

import (
	"errors"
	"sync"
	"time"

	"github.com/FullStackHugoCazaYTcode/bloomwatch-backend/internal/bloom"
)

var (
	// ErrNotFound is returned when no cached status exists for a region.
	ErrNotFound = errors.New("no bloom status for region")
)

// regionHistory holds a time-ordered list of statuses for one region.
type regionHistory struct {
	statuses []bloom.RegionStatus
}

// MemoryStore is a concurrency-safe in-memory region status cache. It backs
// the global bloom map between scheduled refreshes; it is not persistence and
// is rebuilt empty on every start.
type MemoryStore struct {
	mu sync.RWMutex

	// key: region name, value: history
	data map[string]*regionHistory

	// retention configuration
	maxHistory int           // max number of statuses per region
	maxAge     time.Duration // max age before a status stops being served
}

// NewMemoryStore creates a MemoryStore with optional limits. maxHistory <= 0
// means unlimited; maxAge <= 0 disables age-based expiry.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*regionHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveRegion appends a status for a region and enforces retention.
func (s *MemoryStore) SaveRegion(rs bloom.RegionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[rs.Name]
	if !ok {
		history = &regionHistory{}
		s.data[rs.Name] = history
	}

	history.statuses = append(history.statuses, rs)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.statuses) > s.maxHistory {
		over := len(history.statuses) - s.maxHistory
		history.statuses = history.statuses[over:]
	}
}

// LatestRegion returns the most recent non-expired status for a region.
func (s *MemoryStore) LatestRegion(name string) (bloom.RegionStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[name]
	if !ok || len(history.statuses) == 0 {
		return bloom.RegionStatus{}, ErrNotFound
	}

	latest := history.statuses[len(history.statuses)-1]
	if s.maxAge > 0 && time.Since(latest.Timestamp) > s.maxAge {
		return bloom.RegionStatus{}, ErrNotFound
	}
	return latest, nil
}
