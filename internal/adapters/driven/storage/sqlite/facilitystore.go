package sqlite

import (
	"context"
	"fmt"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// Ensure facilityStore implements the interface.
var _ driven.FacilityStore = (*facilityStore)(nil)

// facilityStore persists seeded fixed facilities.
type facilityStore struct {
	store *Store
}

// ListFacilities returns all seeded facilities ordered by ID.
func (f *facilityStore) ListFacilities(ctx context.Context) ([]domain.Facility, error) {
	rows, err := f.store.db.QueryContext(ctx, `
		SELECT id, name, category, latitude, longitude, address, phone
		FROM facilities
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying facilities: %w", err)
	}
	defer rows.Close()

	var facilities []domain.Facility
	for rows.Next() {
		var fac domain.Facility
		var category string
		if err := rows.Scan(&fac.ID, &fac.Name, &category, &fac.Coordinate.Lat, &fac.Coordinate.Lng, &fac.Address, &fac.Phone); err != nil {
			return nil, fmt.Errorf("scanning facility: %w", err)
		}
		fac.Category = domain.ServiceCategory(category)
		facilities = append(facilities, fac)
	}
	return facilities, rows.Err()
}

// SaveFacility stores or updates a seed keyed by ID.
func (f *facilityStore) SaveFacility(ctx context.Context, facility *domain.Facility) error {
	if facility == nil || facility.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := f.store.db.ExecContext(ctx, `
		INSERT INTO facilities (id, name, category, latitude, longitude, address, phone)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			address = excluded.address,
			phone = excluded.phone`,
		facility.ID,
		facility.Name,
		string(facility.Category),
		facility.Coordinate.Lat,
		facility.Coordinate.Lng,
		facility.Address,
		facility.Phone,
	)
	if err != nil {
		return fmt.Errorf("saving facility: %w", err)
	}
	return nil
}

// DeleteFacility removes a seed by ID.
func (f *facilityStore) DeleteFacility(ctx context.Context, id string) error {
	result, err := f.store.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting facility: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
