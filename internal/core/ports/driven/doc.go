// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PositionProvider: Asynchronous device position source
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Geocoder: Reverse geocoding. Without it, addresses fall back to
//     coordinate text.
//   - PlacesDirectory: Nearby service search. Without it, discovery
//     returns seeds only.
//   - FacilityStore: Seeded fixed facilities. Without it, refreshes carry
//     live results only.
//   - TrackStore: Snapshot history log. Without it, nothing is recorded.
//   - IntentDispatcher: Outbound call/directions intents. Without it,
//     taps are dropped.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
