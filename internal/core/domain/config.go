package domain

import "time"

// DefaultCenter is used for discovery before any position snapshot
// exists (central New Delhi).
var DefaultCenter = Coordinate{Lat: 28.6139, Lng: 77.2090}

// TrackingConfig holds tracking session configuration supplied by the host.
type TrackingConfig struct {
	// Interval is how often a scheduled position request is issued.
	Interval time.Duration

	// HighAccuracy requests high-accuracy positioning from the provider.
	HighAccuracy bool

	// AutoStart starts tracking as soon as the host launches.
	AutoStart bool

	// PositionTimeout bounds a single position request.
	PositionTimeout time.Duration

	// GeocodeTimeout bounds a reverse-geocode attempt. Exceeding it is a
	// geocode failure, recovered by falling back to coordinate text.
	GeocodeTimeout time.Duration

	// MaxCacheAge is the oldest provider-cached position accepted.
	// Zero demands a fresh fix.
	MaxCacheAge time.Duration
}

// DefaultTrackingConfig returns the tracking defaults.
// The 15s interval matches the host refresh cadence; 5s is the floor
// to respect provider rate and battery limits.
func DefaultTrackingConfig() TrackingConfig {
	return TrackingConfig{
		Interval:        15 * time.Second,
		HighAccuracy:    true,
		AutoStart:       true,
		PositionTimeout: 15 * time.Second,
		GeocodeTimeout:  3 * time.Second,
	}
}

// MinTrackingInterval is the recommended scheduling floor.
const MinTrackingInterval = 5 * time.Second

// DiscoveryConfig holds service discovery configuration.
type DiscoveryConfig struct {
	// RadiusMeters is the nearby-search radius per category.
	RadiusMeters int

	// MaxPerCategory caps accepted live results per category per refresh
	// to bound rendering cost. Seeds are not capped.
	MaxPerCategory int

	// DefaultPhones maps categories to fallback dial numbers used when a
	// live hit carries no number.
	DefaultPhones map[ServiceCategory]string
}

// DefaultDiscoveryConfig returns the discovery defaults. The fallback
// numbers are the Indian emergency dial codes for police and ambulance.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		RadiusMeters:   5000,
		MaxPerCategory: 5,
		DefaultPhones: map[ServiceCategory]string{
			CategoryPolice:   "100",
			CategoryHospital: "108",
		},
	}
}
