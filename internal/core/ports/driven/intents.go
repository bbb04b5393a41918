package driven

import "github.com/aegis-labs/aegis-cli/internal/core/domain"

// IntentDispatcher hands outbound user intents to the host environment.
// Dispatches are fire-and-forget: the engine does not await completion
// and ignores host-side failures.
type IntentDispatcher interface {
	// CallService dispatches a telephony intent for the given number.
	CallService(phone string)

	// GetDirections dispatches a navigation intent from one coordinate
	// to another.
	GetDirections(from, to domain.Coordinate)
}
