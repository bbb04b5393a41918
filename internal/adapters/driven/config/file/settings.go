package file

import (
	"time"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// Configuration keys. Nested TOML tables flatten to these dot names.
const (
	KeyTrackingInterval     = "tracking.interval_ms"
	KeyTrackingHighAccuracy = "tracking.high_accuracy"
	KeyTrackingAutoStart    = "tracking.auto_start"
	KeyTrackingTimeout      = "tracking.position_timeout_ms"
	KeyGeocodeTimeout       = "tracking.geocode_timeout_ms"
	KeyTrackingMaxCacheAge  = "tracking.max_cache_age_ms"

	KeyDiscoveryRadius = "discovery.radius_m"
	KeyDiscoveryCap    = "discovery.max_per_category"
	KeyPhonePolice     = "discovery.phone_police"
	KeyPhoneHospital   = "discovery.phone_hospital"

	KeyCenterLat = "center.lat"
	KeyCenterLng = "center.lng"
)

// TrackingSettings builds a TrackingConfig from the store, falling back
// to defaults for unset keys.
func TrackingSettings(s *ConfigStore) domain.TrackingConfig {
	cfg := domain.DefaultTrackingConfig()

	if ms := s.GetInt(KeyTrackingInterval); ms > 0 {
		cfg.Interval = time.Duration(ms) * time.Millisecond
	}
	if _, ok := s.Get(KeyTrackingHighAccuracy); ok {
		cfg.HighAccuracy = s.GetBool(KeyTrackingHighAccuracy)
	}
	if _, ok := s.Get(KeyTrackingAutoStart); ok {
		cfg.AutoStart = s.GetBool(KeyTrackingAutoStart)
	}
	if ms := s.GetInt(KeyTrackingTimeout); ms > 0 {
		cfg.PositionTimeout = time.Duration(ms) * time.Millisecond
	}
	if ms := s.GetInt(KeyGeocodeTimeout); ms > 0 {
		cfg.GeocodeTimeout = time.Duration(ms) * time.Millisecond
	}
	if ms := s.GetInt(KeyTrackingMaxCacheAge); ms > 0 {
		cfg.MaxCacheAge = time.Duration(ms) * time.Millisecond
	}

	return cfg
}

// DiscoverySettings builds a DiscoveryConfig from the store, falling
// back to defaults for unset keys.
func DiscoverySettings(s *ConfigStore) domain.DiscoveryConfig {
	cfg := domain.DefaultDiscoveryConfig()

	if m := s.GetInt(KeyDiscoveryRadius); m > 0 {
		cfg.RadiusMeters = m
	}
	if n := s.GetInt(KeyDiscoveryCap); n > 0 {
		cfg.MaxPerCategory = n
	}
	if phone := s.GetString(KeyPhonePolice); phone != "" {
		cfg.DefaultPhones[domain.CategoryPolice] = phone
	}
	if phone := s.GetString(KeyPhoneHospital); phone != "" {
		cfg.DefaultPhones[domain.CategoryHospital] = phone
	}

	return cfg
}

// FallbackCenter returns the configured fallback center, or the
// built-in default when unset.
func FallbackCenter(s *ConfigStore) domain.Coordinate {
	lat := s.GetFloat(KeyCenterLat)
	lng := s.GetFloat(KeyCenterLng)
	if lat == 0 && lng == 0 {
		return domain.DefaultCenter
	}
	return domain.Coordinate{Lat: lat, Lng: lng}
}
