// Package memory provides in-memory driven store implementations,
// used as defaults and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// Ensure FacilityStore implements the interface.
var _ driven.FacilityStore = (*FacilityStore)(nil)

// FacilityStore is an in-memory implementation of driven.FacilityStore.
type FacilityStore struct {
	mu         sync.RWMutex
	facilities map[string]domain.Facility
}

// NewFacilityStore creates an empty in-memory facility store.
func NewFacilityStore() *FacilityStore {
	return &FacilityStore{
		facilities: make(map[string]domain.Facility),
	}
}

// NewFacilityStoreWithSeeds creates a store preloaded with seeds.
func NewFacilityStoreWithSeeds(seeds []domain.Facility) *FacilityStore {
	s := NewFacilityStore()
	for i := range seeds {
		s.facilities[seeds[i].ID] = seeds[i]
	}
	return s
}

// ListFacilities returns all seeds ordered by ID for determinism.
func (s *FacilityStore) ListFacilities(_ context.Context) ([]domain.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Facility, 0, len(s.facilities))
	for id := range s.facilities {
		result = append(result, s.facilities[id])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// SaveFacility stores or updates a seed.
func (s *FacilityStore) SaveFacility(_ context.Context, facility *domain.Facility) error {
	if facility == nil || facility.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facilities[facility.ID] = *facility
	return nil
}

// DeleteFacility removes a seed by ID.
func (s *FacilityStore) DeleteFacility(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.facilities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.facilities, id)
	return nil
}
