package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bingo-watch/internal/baseline"
)

const (
	loadBaselinesSQL = `SELECT card_id, win_prob, saved_at FROM card_baselines;`

	deleteBaselinesSQL = `DELETE FROM card_baselines;`

	insertBaselineSQL = `INSERT INTO card_baselines (card_id, win_prob, saved_at)
    VALUES ($1, $2, $3);`
)

// Load reads the full baseline mapping.
func (s *Store) Load(ctx context.Context) (map[string]baseline.Entry, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, loadBaselinesSQL)
	if queryErr != nil {
		return nil, fmt.Errorf("load baselines: %w", queryErr)
	}
	defer rows.Close()

	entries := make(map[string]baseline.Entry)
	for rows.Next() {
		var cardID string
		var entry baseline.Entry
		if scanErr := rows.Scan(&cardID, &entry.WinProbability, &entry.SavedAt); scanErr != nil {
			return nil, scanErr
		}
		entries[cardID] = entry
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return entries, nil
}

// Save replaces the baseline mapping wholesale inside one transaction.
func (s *Store) Save(ctx context.Context, entries map[string]baseline.Entry) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin baseline save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, execErr := tx.Exec(ctx, deleteBaselinesSQL); execErr != nil {
		return fmt.Errorf("clear baselines: %w", execErr)
	}

	for cardID, entry := range entries {
		if _, execErr := tx.Exec(ctx, insertBaselineSQL, cardID, entry.WinProbability, entry.SavedAt); execErr != nil {
			return fmt.Errorf("insert baseline %s: %w", cardID, execErr)
		}
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return fmt.Errorf("commit baseline save: %w", commitErr)
	}
	return nil
}

var _ baseline.Store = (*Store)(nil)
