package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driving"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// Ensure ServiceDiscoveryEngine implements the interface.
var _ driving.DiscoveryService = (*ServiceDiscoveryEngine)(nil)

// ServiceDiscoveryEngine resolves nearby emergency services. Each Refresh
// merges per-category directory searches with seeded facilities into a
// session set; filters and queries operate on that set in memory without
// re-fetching.
type ServiceDiscoveryEngine struct {
	directory driven.PlacesDirectory
	seeds     driven.FacilityStore
	intents   driven.IntentDispatcher
	cfg       domain.DiscoveryConfig

	mu         sync.RWMutex
	sessionID  string
	generation uint64
	center     domain.Coordinate
	records    []domain.ServiceRecord
	filter     domain.ServiceCategory
	query      string
}

// NewServiceDiscoveryEngine creates a discovery engine. The directory,
// seeds and intents are each optional; missing ones degrade to empty
// live results, no seeds, and dropped taps respectively.
func NewServiceDiscoveryEngine(
	directory driven.PlacesDirectory,
	seeds driven.FacilityStore,
	intents driven.IntentDispatcher,
	cfg domain.DiscoveryConfig,
) *ServiceDiscoveryEngine {
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = domain.DefaultDiscoveryConfig().RadiusMeters
	}
	if cfg.MaxPerCategory <= 0 {
		cfg.MaxPerCategory = domain.DefaultDiscoveryConfig().MaxPerCategory
	}
	return &ServiceDiscoveryEngine{
		directory: directory,
		seeds:     seeds,
		intents:   intents,
		cfg:       cfg,
		center:    domain.DefaultCenter,
	}
}

// Refresh issues one nearby search per category around center, merges and
// deduplicates the hits with the seeded facilities, and atomically
// replaces the session set. A provider failure for one category yields
// zero results for that category only. Returns domain.ErrStaleRefresh
// when a newer refresh superseded this one before it resolved.
func (e *ServiceDiscoveryEngine) Refresh(ctx context.Context, center domain.Coordinate, categories []domain.ServiceCategory) error {
	if len(categories) == 0 {
		categories = domain.AllCategories
	}

	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	logger.Section("Discovery Refresh")
	logger.Debug("Center: %s, categories: %v", center, categories)

	merged := make([]domain.ServiceRecord, 0, len(categories)*e.cfg.MaxPerCategory)
	seen := make(map[string]struct{})

	for _, category := range categories {
		if category == domain.CategoryFixedFacility {
			// Fixed facilities come from seeds, not live searches.
			continue
		}
		hits, err := e.search(ctx, center, category)
		if err != nil {
			logger.Warn("Nearby search failed for %s: %v", category, err)
			continue
		}

		accepted := 0
		for i := range hits {
			if accepted >= e.cfg.MaxPerCategory {
				break
			}
			record, ok := e.buildRecord(&hits[i], category, accepted, center)
			if !ok {
				continue
			}
			if _, dup := seen[record.ID]; dup {
				continue
			}
			seen[record.ID] = struct{}{}
			merged = append(merged, record)
			accepted++
		}
		logger.Debug("Category %s: %d accepted of %d hits", category, accepted, len(hits))
	}

	// Seeds are appended after live results and are never capped.
	for _, facility := range e.seedFacilities(ctx) {
		record := facility.Record(center)
		if _, dup := seen[record.ID]; dup {
			continue
		}
		seen[record.ID] = struct{}{}
		merged = append(merged, record)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation {
		logger.Debug("Discarding superseded refresh")
		return domain.ErrStaleRefresh
	}
	e.sessionID = uuid.NewString()
	e.center = center
	e.records = merged
	logger.Info("Session %s: %d services", e.sessionID, len(merged))
	return nil
}

// search runs one bounded category search against the directory.
func (e *ServiceDiscoveryEngine) search(ctx context.Context, center domain.Coordinate, category domain.ServiceCategory) ([]driven.RawHit, error) {
	if e.directory == nil {
		return nil, nil
	}
	return e.directory.NearbySearch(ctx, center, e.cfg.RadiusMeters, category)
}

// buildRecord converts a raw hit to a ranked service record. Hits without
// a usable coordinate are discarded rather than carried with a
// placeholder location.
func (e *ServiceDiscoveryEngine) buildRecord(hit *driven.RawHit, category domain.ServiceCategory, index int, center domain.Coordinate) (domain.ServiceRecord, bool) {
	if !hit.HasCoordinate {
		return domain.ServiceRecord{}, false
	}

	id := hit.PlaceRef
	if id == "" {
		id = fmt.Sprintf("%s-%d", category, index)
	}

	name := hit.Name
	if name == "" {
		switch category {
		case domain.CategoryPolice:
			name = "Police Station"
		case domain.CategoryHospital:
			name = "Hospital"
		default:
			name = "Emergency Service"
		}
	}

	phone := hit.Phone
	if phone == "" {
		phone = e.cfg.DefaultPhones[category]
	}

	address := hit.Address
	if address == "" {
		address = "Address not available"
	}

	return domain.ServiceRecord{
		ID:          id,
		Name:        name,
		Category:    category,
		Coordinate:  hit.Coordinate,
		Address:     address,
		Phone:       phone,
		DistanceKm:  domain.DistanceKm(center, hit.Coordinate),
		ProviderRef: hit.PlaceRef,
	}, true
}

// seedFacilities loads the seeded facilities, tolerating store absence
// and failure.
func (e *ServiceDiscoveryEngine) seedFacilities(ctx context.Context) []domain.Facility {
	if e.seeds == nil {
		return nil
	}
	facilities, err := e.seeds.ListFacilities(ctx)
	if err != nil {
		logger.Warn("Failed to load seed facilities: %v", err)
		return nil
	}
	return facilities
}

// SetFilter restricts the visible set to one category. Unrecognised input
// (including "all" and the empty string) clears the filter. No network
// call is triggered.
func (e *ServiceDiscoveryEngine) SetFilter(category string) {
	parsed, _ := domain.ParseCategory(category)
	e.mu.Lock()
	e.filter = parsed
	e.mu.Unlock()
}

// SetQuery sets the free-text filter. No network call is triggered.
func (e *ServiceDiscoveryEngine) SetQuery(text string) {
	e.mu.Lock()
	e.query = text
	e.mu.Unlock()
}

// ReRank recomputes every record's distance against a new center without
// re-fetching. The update is atomic: readers observe either all old or
// all new distances. The stored order is unchanged.
func (e *ServiceDiscoveryEngine) ReRank(center domain.Coordinate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reranked := make([]domain.ServiceRecord, len(e.records))
	copy(reranked, e.records)
	for i := range reranked {
		reranked[i].DistanceKm = domain.DistanceKm(center, reranked[i].Coordinate)
	}
	e.center = center
	e.records = reranked
}

// Visible returns the records passing the category and text filters,
// sorted ascending by distance with ties broken by ID.
func (e *ServiceDiscoveryEngine) Visible() []domain.ServiceRecord {
	e.mu.RLock()
	visible := make([]domain.ServiceRecord, 0, len(e.records))
	for i := range e.records {
		if e.records[i].Matches(e.filter, e.query) {
			visible = append(visible, e.records[i])
		}
	}
	e.mu.RUnlock()

	domain.SortByDistance(visible)
	return visible
}

// All returns the full merged set in stored order.
func (e *ServiceDiscoveryEngine) All() []domain.ServiceRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	all := make([]domain.ServiceRecord, len(e.records))
	copy(all, e.records)
	return all
}

// SessionID identifies the current session; it changes on every
// completed refresh.
func (e *ServiceDiscoveryEngine) SessionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessionID
}

// Call dispatches a fire-and-forget call intent for the record with the
// given ID.
func (e *ServiceDiscoveryEngine) Call(id string) error {
	record, err := e.find(id)
	if err != nil {
		return err
	}
	if e.intents != nil {
		e.intents.CallService(record.Phone)
	}
	return nil
}

// Directions dispatches a fire-and-forget directions intent from the
// current ranking center to the record with the given ID.
func (e *ServiceDiscoveryEngine) Directions(id string) error {
	record, err := e.find(id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	center := e.center
	e.mu.RUnlock()
	if e.intents != nil {
		e.intents.GetDirections(center, record.Coordinate)
	}
	return nil
}

// find looks up a record by ID in the current session.
func (e *ServiceDiscoveryEngine) find(id string) (domain.ServiceRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := range e.records {
		if e.records[i].ID == id {
			return e.records[i], nil
		}
	}
	return domain.ServiceRecord{}, fmt.Errorf("service %q: %w", id, domain.ErrNotFound)
}
