package domain

import (
	"fmt"
	"time"
)

// TrackingState identifies where a tracking session is in its lifecycle.
type TrackingState int

const (
	// TrackingIdle means tracking has not started or was stopped before
	// any position resolved.
	TrackingIdle TrackingState = iota

	// TrackingRequesting means a position request is outstanding.
	TrackingRequesting

	// TrackingActive means at least one snapshot has been published and
	// the session is healthy.
	TrackingActive

	// TrackingDenied means the position provider refused permission.
	// Terminal until the caller explicitly starts tracking again.
	TrackingDenied
)

// String returns the human-readable state name.
func (s TrackingState) String() string {
	switch s {
	case TrackingIdle:
		return "idle"
	case TrackingRequesting:
		return "requesting"
	case TrackingActive:
		return "active"
	case TrackingDenied:
		return "denied"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// PositionSnapshot is an immutable captured device position.
// A new snapshot replaces, never mutates, the previous one. The tracking
// controller owns snapshot creation; everyone else reads.
type PositionSnapshot struct {
	// Coordinate is the captured position.
	Coordinate Coordinate

	// AccuracyMeters is the provider-reported accuracy radius.
	// Always non-negative.
	AccuracyMeters float64

	// CapturedAt is when the provider resolved the position.
	CapturedAt time.Time

	// ResolvedAddress is the reverse-geocoded address, or empty when
	// resolution failed or was unavailable.
	ResolvedAddress string
}

// Address returns the resolved address, falling back to fixed-precision
// coordinate text when no address was resolved.
func (p *PositionSnapshot) Address() string {
	if p.ResolvedAddress != "" {
		return p.ResolvedAddress
	}
	return p.Coordinate.String()
}

// ShareText renders the snapshot as a single shareable line,
// e.g. "28.6139, 77.2090 (±12m) - Connaught Place, New Delhi".
func (p *PositionSnapshot) ShareText() string {
	text := fmt.Sprintf("%s (±%.0fm)", p.Coordinate.String(), p.AccuracyMeters)
	if p.ResolvedAddress != "" {
		text += " - " + p.ResolvedAddress
	}
	return text
}
