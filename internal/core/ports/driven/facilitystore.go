package driven

import (
	"context"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

// FacilityStore provides seeded fixed facilities.
// Seeds are appended to every discovery refresh after live results and
// are not subject to the per-category cap.
type FacilityStore interface {
	// ListFacilities returns all seeded facilities.
	ListFacilities(ctx context.Context) ([]domain.Facility, error)

	// SaveFacility stores or updates a seed.
	SaveFacility(ctx context.Context, facility *domain.Facility) error

	// DeleteFacility removes a seed by ID.
	DeleteFacility(ctx context.Context, id string) error
}
