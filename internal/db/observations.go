package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetObservations returns the scorer's free-text notes for a match, empty if
// none were saved yet.
func (db *DB) GetObservations(ctx context.Context, matchID string) (string, error) {
	var body string
	err := db.QueryRowContext(ctx,
		`SELECT body FROM observations WHERE match_id = ?`, matchID,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get observations %s: %w", matchID, err)
	}
	return body, nil
}

// SaveObservations upserts the scorer's notes for a match.
func (db *DB) SaveObservations(ctx context.Context, matchID, body string, updatedAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO observations (match_id, body, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (match_id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		matchID, body, updatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save observations %s: %w", matchID, err)
	}
	return nil
}
