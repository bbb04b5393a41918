package domain

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	// Lat is the latitude in decimal degrees.
	Lat float64

	// Lng is the longitude in decimal degrees.
	Lng float64
}

// String formats the coordinate as fixed-precision decimal degrees.
// This is also the deterministic fallback text when reverse geocoding
// is unavailable.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

// DistanceKm computes the great-circle (haversine) distance in kilometres
// between two coordinates. It is pure and symmetric; identical coordinates
// yield exactly zero.
func DistanceKm(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
