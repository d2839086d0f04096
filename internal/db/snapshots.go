package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadSnapshot reads the persisted clock snapshot blob for a match.
func (db *DB) LoadSnapshot(ctx context.Context, matchID string) ([]byte, bool, error) {
	var payload []byte
	err := db.QueryRowContext(ctx,
		`SELECT payload FROM clock_snapshots WHERE match_id = ?`, matchID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %s: %w", matchID, err)
	}
	return payload, true, nil
}

// SaveSnapshot upserts the clock snapshot blob for a match.
func (db *DB) SaveSnapshot(ctx context.Context, matchID string, payload []byte, takenAt time.Time) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO clock_snapshots (match_id, payload, taken_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (match_id) DO UPDATE SET payload = excluded.payload, taken_at = excluded.taken_at`,
		matchID, payload, takenAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", matchID, err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot row for a match.
func (db *DB) DeleteSnapshot(ctx context.Context, matchID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM clock_snapshots WHERE match_id = ?`, matchID,
	)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", matchID, err)
	}
	return nil
}

// DeleteStaleSnapshots removes snapshots taken before the cutoff and returns
// how many were evicted. The background eviction job applies the same
// staleness rule the clock store applies on restore.
func (db *DB) DeleteStaleSnapshots(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM clock_snapshots WHERE taken_at < ?`, cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale snapshots: %w", err)
	}
	evicted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("stale snapshot rows affected: %w", err)
	}
	return evicted, nil
}
