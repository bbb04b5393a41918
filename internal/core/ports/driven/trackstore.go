package driven

import (
	"context"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// TrackStore records published position snapshots for host-side history.
// The engine only appends; it never reads the log back for its own logic.
type TrackStore interface {
	// AppendSnapshot records a published snapshot.
	AppendSnapshot(ctx context.Context, snap *domain.PositionSnapshot) error

	// RecentSnapshots returns up to limit snapshots, newest first.
	RecentSnapshots(ctx context.Context, limit int) ([]domain.PositionSnapshot, error)

	// Prune discards all but the newest keep snapshots.
	Prune(ctx context.Context, keep int) error
}
