package domain

import (
	"sort"
	"strings"
)

// ServiceCategory is the closed set of emergency service categories.
// Keeping this an enumeration (not a free string) keeps category
// filtering exhaustive.
type ServiceCategory string

const (
	// CategoryPolice is a police station.
	CategoryPolice ServiceCategory = "police"

	// CategoryHospital is a hospital or emergency room.
	CategoryHospital ServiceCategory = "hospital"

	// CategoryFixedFacility is a fixed facility not available from the
	// live directory, e.g. a civil-defence headquarters.
	CategoryFixedFacility ServiceCategory = "facility"
)

// AllCategories lists every live-searchable category in refresh order.
// Fixed facilities come from seeds, not provider searches.
var AllCategories = []ServiceCategory{CategoryPolice, CategoryHospital}

// ParseCategory resolves user input to a category. The empty string and
// "all" mean no category filter and return ok=false.
func ParseCategory(s string) (ServiceCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CategoryPolice):
		return CategoryPolice, true
	case string(CategoryHospital):
		return CategoryHospital, true
	case string(CategoryFixedFacility):
		return CategoryFixedFacility, true
	default:
		return "", false
	}
}

// ServiceRecord is one nearby emergency service within a discovery session.
type ServiceRecord struct {
	// ID is unique within a merged result set and stable for the session.
	ID string

	// Name is the display name of the service.
	Name string

	// Category classifies the service.
	Category ServiceCategory

	// Coordinate is the service location.
	Coordinate Coordinate

	// Address is the provider-reported address text.
	Address string

	// Phone is the dialable number for the service.
	Phone string

	// DistanceKm is the great-circle distance from the current ranking
	// center. Recomputed whenever the reference position changes.
	DistanceKm float64

	// ProviderRef is the opaque provider place reference, empty for seeds.
	ProviderRef string
}

// Matches reports whether the record passes the given category filter and
// free-text query. An empty category means all categories; the query is a
// case-insensitive substring match against name or address. Both compose
// with logical AND.
func (r *ServiceRecord) Matches(category ServiceCategory, query string) bool {
	if category != "" && r.Category != category {
		return false
	}
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Address), q)
}

// SortByDistance orders records by ascending DistanceKm. The sort is
// stable with ties broken by ID ascending, so repeated ranking of
// unchanged inputs is deterministic.
func SortByDistance(records []ServiceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].DistanceKm != records[j].DistanceKm {
			return records[i].DistanceKm < records[j].DistanceKm
		}
		return records[i].ID < records[j].ID
	})
}

// Facility is a seeded fixed facility appended to every discovery refresh.
// Seeds are not subject to the per-category result cap.
type Facility struct {
	// ID is the stable seed identifier.
	ID string

	// Name is the display name.
	Name string

	// Category classifies the facility.
	Category ServiceCategory

	// Coordinate is the facility location.
	Coordinate Coordinate

	// Address is the facility address text.
	Address string

	// Phone is the dialable number.
	Phone string
}

// Record converts the facility to a service record ranked against center.
func (f *Facility) Record(center Coordinate) ServiceRecord {
	return ServiceRecord{
		ID:         f.ID,
		Name:       f.Name,
		Category:   f.Category,
		Coordinate: f.Coordinate,
		Address:    f.Address,
		Phone:      f.Phone,
		DistanceKm: DistanceKm(center, f.Coordinate),
	}
}
