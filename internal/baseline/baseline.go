// Package baseline remembers the last win probabilities a user has looked at,
// so the next visit can show what moved since.
package baseline

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/bingo"
)

// Entry is one saved observation for a card.
type Entry struct {
	WinProbability float64   `json:"winProbability"`
	SavedAt        time.Time `json:"savedAt"`
}

// Store persists the card_id -> Entry mapping. Save overwrites the whole
// mapping; there are no partial updates.
type Store interface {
	Load(ctx context.Context) (map[string]Entry, error)
	Save(ctx context.Context, entries map[string]Entry) error
}

// Tracker computes "since last visit" deltas against a Store.
type Tracker struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewTracker wires a store into a tracker.
func NewTracker(store Store, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger.With().Str("component", "baseline").Logger(),
		now:    time.Now,
	}
}

// Snapshot overwrites the baseline with the current stored win probability of
// every card, stamped now.
func (t *Tracker) Snapshot(ctx context.Context, cards []bingo.Card) error {
	entries := make(map[string]Entry, len(cards))
	savedAt := t.now()
	for _, card := range cards {
		entries[card.CardID] = Entry{WinProbability: card.WinProbability, SavedAt: savedAt}
	}
	return t.store.Save(ctx, entries)
}

// Bootstrap saves an initial baseline iff none exists yet, so first-time
// visitors get a reference point without a manual save. Returns whether a
// save happened.
func (t *Tracker) Bootstrap(ctx context.Context, cards []bingo.Card) (bool, error) {
	if len(t.load(ctx)) > 0 {
		return false, nil
	}
	if err := t.Snapshot(ctx, cards); err != nil {
		return false, err
	}
	return true, nil
}

// Deltas decorates each view with the change against the saved baseline.
// Cards without a baseline entry keep nil delta fields.
func (t *Tracker) Deltas(ctx context.Context, views []bingo.CardView) []bingo.CardView {
	entries := t.load(ctx)
	if len(entries) == 0 {
		return views
	}

	now := t.now()
	for i := range views {
		entry, ok := entries[views[i].CardID]
		if !ok {
			continue
		}
		delta := views[i].WinProbability - entry.WinProbability
		hours := now.Sub(entry.SavedAt).Hours()
		views[i].Delta = &delta
		views[i].HoursSince = &hours
	}
	return views
}

// load degrades read failures to an empty mapping; a corrupt or missing
// baseline must never surface as an error.
func (t *Tracker) load(ctx context.Context) map[string]Entry {
	entries, err := t.store.Load(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("baseline read failed, treating as empty")
		return map[string]Entry{}
	}
	return entries
}

// MemoryStore is the in-process fallback when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore constructs an empty in-process baseline store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Load returns a copy of the stored mapping.
func (m *MemoryStore) Load(context.Context) (map[string]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Entry, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

// Save replaces the stored mapping wholesale.
func (m *MemoryStore) Save(_ context.Context, entries map[string]Entry) error {
	replacement := make(map[string]Entry, len(entries))
	for k, v := range entries {
		replacement[k] = v
	}
	m.mu.Lock()
	m.entries = replacement
	m.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
