package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTrackingActive indicates tracking is already running.
	ErrTrackingActive = errors.New("tracking already active")

	// ErrRequestInFlight indicates a position request is already
	// outstanding. New requests are coalesced, never queued.
	ErrRequestInFlight = errors.New("position request already in flight")

	// Position Errors.

	// ErrPermissionDenied indicates the position provider refused access.
	// Fatal for the session until the caller explicitly starts again;
	// never retried automatically.
	ErrPermissionDenied = errors.New("position permission denied")

	// ErrPositionUnavailable indicates the provider could not produce a
	// position. Retryable; the next scheduled tick tries again.
	ErrPositionUnavailable = errors.New("position unavailable")

	// ErrPositionTimeout indicates a position request exceeded its
	// operation timeout. Retryable, same policy as unavailable.
	ErrPositionTimeout = errors.New("position request timed out")

	// Directory Errors.

	// ErrGeocodeUnavailable indicates the geocoding provider is absent or
	// failed. Fully recovered locally: callers fall back to coordinate
	// text and never surface this.
	ErrGeocodeUnavailable = errors.New("geocoder unavailable")

	// ErrDirectoryUnavailable indicates a nearby-search provider failure.
	// Recovered per category: the refresh still completes with whatever
	// succeeded, plus seeds.
	ErrDirectoryUnavailable = errors.New("places directory unavailable")

	// ErrStaleRefresh indicates a discovery refresh was superseded by a
	// newer one before it resolved; its results were discarded.
	ErrStaleRefresh = errors.New("refresh superseded")
)

// Retryable reports whether a tracking failure should be retried on the
// next scheduled tick. Permission refusals are not retryable.
func Retryable(err error) bool {
	return errors.Is(err, ErrPositionUnavailable) || errors.Is(err, ErrPositionTimeout)
}
