package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// Ensure trackStore implements the interface.
var _ driven.TrackStore = (*trackStore)(nil)

// trackStore persists published position snapshots.
type trackStore struct {
	store *Store
}

// AppendSnapshot records a published snapshot.
func (t *trackStore) AppendSnapshot(ctx context.Context, snap *domain.PositionSnapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}

	_, err := t.store.db.ExecContext(ctx, `
		INSERT INTO track_log (latitude, longitude, accuracy_m, captured_at, resolved_address)
		VALUES (?, ?, ?, ?, ?)`,
		snap.Coordinate.Lat,
		snap.Coordinate.Lng,
		snap.AccuracyMeters,
		snap.CapturedAt.UTC().Format(time.RFC3339Nano),
		snap.ResolvedAddress,
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// RecentSnapshots returns up to limit snapshots, newest first.
func (t *trackStore) RecentSnapshots(ctx context.Context, limit int) ([]domain.PositionSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := t.store.db.QueryContext(ctx, `
		SELECT latitude, longitude, accuracy_m, captured_at, resolved_address
		FROM track_log
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying track log: %w", err)
	}
	defer rows.Close()

	var snaps []domain.PositionSnapshot
	for rows.Next() {
		var snap domain.PositionSnapshot
		var capturedAt string
		if err := rows.Scan(&snap.Coordinate.Lat, &snap.Coordinate.Lng, &snap.AccuracyMeters, &capturedAt, &snap.ResolvedAddress); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, capturedAt); err == nil {
			snap.CapturedAt = ts
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Prune discards all but the newest keep snapshots.
func (t *trackStore) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return domain.ErrInvalidInput
	}

	_, err := t.store.db.ExecContext(ctx, `
		DELETE FROM track_log
		WHERE id NOT IN (SELECT id FROM track_log ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return fmt.Errorf("pruning track log: %w", err)
	}
	return nil
}
