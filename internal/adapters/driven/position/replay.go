package position

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// Ensure ReplayProvider implements the interface.
var _ driven.PositionProvider = (*ReplayProvider)(nil)

// trackPoint is one recorded position in a replay file.
type trackPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}

// ReplayProvider steps through a recorded track file, returning the next
// point on each request and holding the last point once the track is
// exhausted. Useful for demos and for exercising the tracking pipeline
// without hardware.
type ReplayProvider struct {
	mu     sync.Mutex
	points []trackPoint
	next   int
}

// NewReplayProvider loads a JSON track file: an array of
// {latitude, longitude, accuracy} objects.
func NewReplayProvider(path string) (*ReplayProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading track file: %w", err)
	}

	var points []trackPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parsing track file: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("track file %s: %w", path, domain.ErrInvalidInput)
	}

	return &ReplayProvider{points: points}, nil
}

// RequestPosition returns the next recorded point.
func (p *ReplayProvider) RequestPosition(ctx context.Context, _ driven.PositionRequest) (*driven.PositionFix, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrPositionTimeout
	}

	p.mu.Lock()
	point := p.points[p.next]
	if p.next < len(p.points)-1 {
		p.next++
	}
	p.mu.Unlock()

	return &driven.PositionFix{
		Coordinate:     domain.Coordinate{Lat: point.Latitude, Lng: point.Longitude},
		AccuracyMeters: point.Accuracy,
	}, nil
}
