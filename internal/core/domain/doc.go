// Package domain defines the core business entities for Aegis.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Coordinate: A WGS84 latitude/longitude pair with distance math
//   - PositionSnapshot: An immutable captured device position
//   - TrackingState: The tracking session state machine states
//   - ServiceRecord: A nearby emergency service with ranking distance
//   - Facility: A seeded fixed facility appended to every refresh
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
