package driven

import (
	"context"
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// PositionRequest configures a single position acquisition.
type PositionRequest struct {
	// HighAccuracy asks the provider for its most accurate fix.
	HighAccuracy bool

	// Timeout bounds the request. The controller also enforces this via
	// the context deadline; providers that cannot interrupt themselves
	// are abandoned and their late results discarded.
	Timeout time.Duration

	// MaxCacheAge is the oldest cached fix the provider may return.
	// Zero demands a fresh fix.
	MaxCacheAge time.Duration
}

// PositionFix is a raw provider position before snapshot construction.
type PositionFix struct {
	// Coordinate is the device position.
	Coordinate domain.Coordinate

	// AccuracyMeters is the provider-reported accuracy radius.
	AccuracyMeters float64
}

// PositionProvider wraps the device's asynchronous position API.
//
// RequestPosition blocks until a fix resolves, the request fails, or ctx
// is done. Failures are classified with the domain sentinels:
// domain.ErrPermissionDenied, domain.ErrPositionUnavailable and
// domain.ErrPositionTimeout.
type PositionProvider interface {
	// RequestPosition acquires a single position fix.
	RequestPosition(ctx context.Context, req PositionRequest) (*PositionFix, error)
}
