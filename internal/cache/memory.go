package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps snapshots in-process. It is the default backend when no
// Redis address is configured; contents vanish with the process, matching the
// session scope of the cache.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Snapshot
	now     func() time.Time
}

// NewMemoryStore constructs an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Snapshot),
		now:     time.Now,
	}
}

// Get returns a fresh snapshot or a miss. Stale entries are evicted on read.
func (m *MemoryStore) Get(_ context.Context, key string) (Snapshot, bool, error) {
	m.mu.RLock()
	snap, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return Snapshot{}, false, nil
	}
	if !snap.Fresh(m.now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Put stores or replaces the snapshot for key.
func (m *MemoryStore) Put(_ context.Context, key string, snap Snapshot) error {
	m.mu.Lock()
	m.entries[key] = snap
	m.mu.Unlock()
	return nil
}

var _ SnapshotStore = (*MemoryStore)(nil)
