package services

import (
	"context"
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// defaultGeocodeTimeout bounds a resolve attempt when the caller
// configures none.
const defaultGeocodeTimeout = 3 * time.Second

// GeocodeResolver resolves coordinates to address text with graceful
// degradation: on any provider error, timeout, or absence it falls back
// to deterministic fixed-precision coordinate text. It never returns an
// error to the caller.
type GeocodeResolver struct {
	geocoder driven.Geocoder
	timeout  time.Duration
}

// NewGeocodeResolver creates a resolver around an optional geocoder.
// A nil geocoder is valid and always yields the coordinate fallback.
func NewGeocodeResolver(geocoder driven.Geocoder, timeout time.Duration) *GeocodeResolver {
	if timeout <= 0 {
		timeout = defaultGeocodeTimeout
	}
	return &GeocodeResolver{
		geocoder: geocoder,
		timeout:  timeout,
	}
}

// Resolve returns the address for a coordinate, or the coordinate's
// fixed-precision text when resolution fails for any reason.
func (r *GeocodeResolver) Resolve(ctx context.Context, coord domain.Coordinate) string {
	if address, ok := r.ResolveAddress(ctx, coord); ok {
		return address
	}
	return coord.String()
}

// ResolveAddress returns the resolved address and true, or ("", false)
// when the geocoder is absent, errors, times out, or returns nothing.
// Snapshot construction uses this so a failed resolution leaves the
// snapshot's address empty rather than storing the fallback text.
func (r *GeocodeResolver) ResolveAddress(ctx context.Context, coord domain.Coordinate) (string, bool) {
	if r.geocoder == nil {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	address, err := r.geocoder.ReverseGeocode(ctx, coord)
	if err != nil {
		logger.Debug("Reverse geocode failed for %s: %v", coord, err)
		return "", false
	}
	if address == "" {
		return "", false
	}
	return address, true
}
