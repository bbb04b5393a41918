package driving

import (
	"context"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// DiscoveryService resolves and ranks nearby emergency services.
type DiscoveryService interface {
	// Refresh issues nearby searches for the given categories around
	// center and atomically replaces the session's merged set. A refresh
	// superseded by a newer one before resolving is discarded.
	// Empty categories means all live categories.
	Refresh(ctx context.Context, center domain.Coordinate, categories []domain.ServiceCategory) error

	// SetFilter restricts the visible set to one category. The empty
	// string or "all" clears the filter. In-memory only; no re-fetch.
	SetFilter(category string)

	// SetQuery restricts the visible set to records whose name or
	// address contains text (case-insensitive). In-memory only.
	SetQuery(text string)

	// ReRank recomputes every record's distance against a new center
	// without re-fetching. The stored order is unchanged.
	ReRank(center domain.Coordinate)

	// Visible returns the filtered records sorted ascending by distance.
	Visible() []domain.ServiceRecord

	// All returns the full merged set of the current session.
	All() []domain.ServiceRecord

	// Call dispatches a call intent for the record with the given ID.
	Call(id string) error

	// Directions dispatches a directions intent from the current ranking
	// center to the record with the given ID.
	Directions(id string) error
}
