package storage

import (
	"context"
	"fmt"
)

// Display-preference flags consulted by the presentation layer.
const (
	PrefShowFullQuestions = "show_full_questions"
)

const (
	getPrefSQL = `SELECT value FROM display_prefs WHERE name = $1;`

	upsertPrefSQL = `INSERT INTO display_prefs (name, value)
    VALUES ($1, $2)
    ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value;`
)

// GetPref reads a display preference; missing or unreadable flags fall back
// to the supplied default rather than erroring.
func (s *Store) GetPref(ctx context.Context, name, fallback string) string {
	pool, err := s.getPool()
	if err != nil {
		return fallback
	}

	var value string
	if scanErr := pool.QueryRow(ctx, getPrefSQL, name).Scan(&value); scanErr != nil {
		return fallback
	}
	return value
}

// SetPref stores a display preference.
func (s *Store) SetPref(ctx context.Context, name, value string) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, upsertPrefSQL, name, value); execErr != nil {
		return fmt.Errorf("set pref %s: %w", name, execErr)
	}
	return nil
}
