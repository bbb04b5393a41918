package driven

import (
	"context"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// Geocoder resolves coordinates to human-readable address text.
type Geocoder interface {
	// ReverseGeocode returns the address for a coordinate.
	// Errors are classified as domain.ErrGeocodeUnavailable; callers
	// degrade to coordinate text and never surface the failure.
	ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error)
}

// RawHit is one nearby-search result before record construction.
// Hits lacking a usable coordinate are discarded by the engine.
type RawHit struct {
	// Name is the place display name.
	Name string

	// Coordinate is the place location. HasCoordinate reports validity.
	Coordinate domain.Coordinate

	// HasCoordinate is false when the provider returned no usable
	// location for the hit.
	HasCoordinate bool

	// Address is the provider-reported address or vicinity text.
	Address string

	// Phone is the provider-reported number, often empty.
	Phone string

	// PlaceRef is the opaque provider place reference.
	PlaceRef string
}

// PlacesDirectory issues category searches against an external places
// directory.
type PlacesDirectory interface {
	// NearbySearch returns raw hits of the given category around center.
	// A failure is a category-level failure (domain.ErrDirectoryUnavailable);
	// other categories in the same refresh are unaffected.
	NearbySearch(ctx context.Context, center domain.Coordinate, radiusMeters int, category domain.ServiceCategory) ([]RawHit, error)
}
