// Package cache stores fetched bet-history timelines for the lifetime of a
// session so shared markets are not refetched on every refresh.
package cache

import (
	"context"
	"time"

	"bingo-watch/internal/stats"
)

// TTL is the freshness window: entries at or beyond this age are misses and
// the caller must refetch. The store itself never fetches.
const TTL = 5 * time.Minute

// Snapshot is one cached bet-history fetch.
type Snapshot struct {
	Timeline  []stats.BetPoint `json:"timeline"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// Fresh reports whether the snapshot is still inside the freshness window.
func (s Snapshot) Fresh(now time.Time) bool {
	return now.Sub(s.FetchedAt) < TTL
}

// SnapshotStore is a session-scoped key-value cache keyed by market id.
type SnapshotStore interface {
	// Get returns the cached snapshot for key; ok is false on a miss or a
	// stale entry.
	Get(ctx context.Context, key string) (Snapshot, bool, error)
	Put(ctx context.Context, key string, snap Snapshot) error
}
