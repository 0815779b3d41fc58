package store

import (
	"context"
	"fmt"
)

// ListRecent returns up to limit history entries, newest first.
// Ordering is deterministic: created_at descending, then id ascending
// for entries recorded in the same instant.
//
// Returns an empty slice (not nil) if no entries exist.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_token, name, source, result_json, duration_ms, created_at
		FROM history
		ORDER BY created_at DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.RunToken, &e.Name, &e.Source, &e.ResultJSON, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return entries, nil
}
