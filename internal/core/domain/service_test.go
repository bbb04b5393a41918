package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseCategory_Known tests recognised category names
func TestParseCategory_Known(t *testing.T) {
	cat, ok := ParseCategory("police")
	assert.True(t, ok)
	assert.Equal(t, CategoryPolice, cat)

	cat, ok = ParseCategory("hospital")
	assert.True(t, ok)
	assert.Equal(t, CategoryHospital, cat)

	cat, ok = ParseCategory("facility")
	assert.True(t, ok)
	assert.Equal(t, CategoryFixedFacility, cat)
}

// TestParseCategory_Normalises tests case and whitespace handling
func TestParseCategory_Normalises(t *testing.T) {
	cat, ok := ParseCategory("  Police ")

	assert.True(t, ok)
	assert.Equal(t, CategoryPolice, cat)
}

// TestParseCategory_ClearsFilter tests that "all" and empty mean no filter
func TestParseCategory_ClearsFilter(t *testing.T) {
	cat, ok := ParseCategory("all")
	assert.False(t, ok)
	assert.Equal(t, ServiceCategory(""), cat)

	cat, ok = ParseCategory("")
	assert.False(t, ok)
	assert.Equal(t, ServiceCategory(""), cat)
}

// TestParseCategory_Unknown tests unrecognised input
func TestParseCategory_Unknown(t *testing.T) {
	_, ok := ParseCategory("fire")

	assert.False(t, ok)
}

// TestServiceRecord_MatchesCategory tests the category filter
func TestServiceRecord_MatchesCategory(t *testing.T) {
	rec := ServiceRecord{Name: "City Hospital", Category: CategoryHospital}

	assert.True(t, rec.Matches(CategoryHospital, ""))
	assert.False(t, rec.Matches(CategoryPolice, ""))
	assert.True(t, rec.Matches("", ""))
}

// TestServiceRecord_MatchesQuery tests the case-insensitive text filter
func TestServiceRecord_MatchesQuery(t *testing.T) {
	rec := ServiceRecord{
		Name:     "City Hospital",
		Category: CategoryHospital,
		Address:  "MG Road, Bengaluru",
	}

	assert.True(t, rec.Matches("", "city"))
	assert.True(t, rec.Matches("", "HOSPITAL"))
	assert.True(t, rec.Matches("", "mg road"))
	assert.False(t, rec.Matches("", "clinic"))
}

// TestServiceRecord_MatchesComposesFilters tests that category and query AND together
func TestServiceRecord_MatchesComposesFilters(t *testing.T) {
	rec := ServiceRecord{Name: "City Hospital", Category: CategoryHospital}

	assert.True(t, rec.Matches(CategoryHospital, "city"))
	assert.False(t, rec.Matches(CategoryPolice, "city"))
	assert.False(t, rec.Matches(CategoryHospital, "station"))
}

// TestSortByDistance_Orders tests ascending distance order
func TestSortByDistance_Orders(t *testing.T) {
	records := []ServiceRecord{
		{ID: "c", DistanceKm: 3.2},
		{ID: "a", DistanceKm: 0.5},
		{ID: "b", DistanceKm: 1.8},
	}

	SortByDistance(records)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
}

// TestSortByDistance_TiesBreakByID tests deterministic tie-breaking
func TestSortByDistance_TiesBreakByID(t *testing.T) {
	records := []ServiceRecord{
		{ID: "z", DistanceKm: 1},
		{ID: "a", DistanceKm: 1},
		{ID: "m", DistanceKm: 1},
	}

	SortByDistance(records)

	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "m", records[1].ID)
	assert.Equal(t, "z", records[2].ID)
}

// TestFacility_Record tests conversion to a ranked service record
func TestFacility_Record(t *testing.T) {
	facility := Facility{
		ID:         "ncc-1",
		Name:       "Delhi NCC Headquarters",
		Category:   CategoryFixedFacility,
		Coordinate: Coordinate{Lat: 28.6562, Lng: 77.241},
		Address:    "Red Fort, Delhi",
		Phone:      "+91-11-23011234",
	}
	center := Coordinate{Lat: 28.6139, Lng: 77.209}

	rec := facility.Record(center)

	assert.Equal(t, "ncc-1", rec.ID)
	assert.Equal(t, CategoryFixedFacility, rec.Category)
	assert.Equal(t, "+91-11-23011234", rec.Phone)
	assert.Empty(t, rec.ProviderRef)
	assert.InDelta(t, 5.7, rec.DistanceKm, 0.3)
}
