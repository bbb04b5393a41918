package position

import (
	"context"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// Ensure StaticProvider implements the interface.
var _ driven.PositionProvider = (*StaticProvider)(nil)

// StaticProvider always resolves to one configured coordinate.
// Used when the host has no positioning stack and the user pins their
// location in configuration.
type StaticProvider struct {
	coordinate domain.Coordinate
	accuracy   float64
	denied     bool
}

// NewStaticProvider creates a provider pinned to a coordinate with the
// given accuracy radius in meters.
func NewStaticProvider(coordinate domain.Coordinate, accuracyMeters float64) *StaticProvider {
	return &StaticProvider{coordinate: coordinate, accuracy: accuracyMeters}
}

// Deny makes every subsequent request fail with a permission refusal.
// Lets hosts model a user revoking location access.
func (p *StaticProvider) Deny() {
	p.denied = true
}

// RequestPosition returns the pinned coordinate.
func (p *StaticProvider) RequestPosition(ctx context.Context, _ driven.PositionRequest) (*driven.PositionFix, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrPositionTimeout
	}
	if p.denied {
		return nil, domain.ErrPermissionDenied
	}
	return &driven.PositionFix{
		Coordinate:     p.coordinate,
		AccuracyMeters: p.accuracy,
	}, nil
}
