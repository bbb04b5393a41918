package driving

import (
	"context"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// TrackingService drives the position tracking state machine.
type TrackingService interface {
	// Start begins scheduled tracking with an immediate position request.
	// Returns ErrTrackingActive when a live schedule is already running.
	// Denied sessions re-enter Requesting only through an explicit Start,
	// which supersedes the denied schedule.
	Start(ctx context.Context, cfg domain.TrackingConfig) error

	// Stop cancels the recurring schedule. Idempotent. In-flight requests
	// are not aborted; their late results are discarded.
	Stop()

	// RequestOnce issues a single position request independent of the
	// schedule. It does not reset the schedule's timer.
	RequestOnce(ctx context.Context) (*domain.PositionSnapshot, error)

	// State returns the current tracking state.
	State() domain.TrackingState

	// Current returns the most recent snapshot, or nil before the first
	// successful request.
	Current() *domain.PositionSnapshot

	// Subscribe registers a snapshot observer. Snapshots arrive in
	// publish order; slow observers miss updates rather than stall the
	// controller.
	Subscribe() <-chan *domain.PositionSnapshot
}
