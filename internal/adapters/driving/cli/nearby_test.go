package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

func resetNearbyFlags() {
	nearbyCategory = ""
	nearbyQuery = ""
	nearbyJSON = false
	nearbyLocate = false
}

func TestNearbyCmd_Use(t *testing.T) {
	assert.Equal(t, "nearby", nearbyCmd.Use)
}

func TestNearbyCmd_ListsRankedServices(t *testing.T) {
	_, discovery, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"nearby"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Services near")
	// Hospital is closer, so it lists first.
	hospital := bytes.Index([]byte(out), []byte("Ram Manohar Lohia Hospital"))
	police := bytes.Index([]byte(out), []byte("Connaught Place Police Station"))
	assert.Less(t, hospital, police)
	// The refresh ran against the current snapshot's coordinate.
	assert.Equal(t, domain.Coordinate{Lat: 28.6139, Lng: 77.209}, discovery.center)
}

func TestNearbyCmd_CategoryFilter(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"nearby", "--category", "hospital"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ram Manohar Lohia Hospital")
	assert.NotContains(t, buf.String(), "Police Station")
}

func TestNearbyCmd_RejectsUnknownCategory(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"nearby", "--category", "firestation"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNearbyCmd_QueryFilter(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"nearby", "--query", "lohia"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ram Manohar Lohia Hospital")
	assert.NotContains(t, buf.String(), "Police Station")
}

func TestNearbyCmd_JSONOutput(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"nearby", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ID\": \"h1\"")
	assert.Contains(t, buf.String(), "\"DistanceKm\": 1.4")
}

func TestNearbyCmd_NoResults(t *testing.T) {
	_, discovery, cleanup := setupTestServices()
	defer cleanup()
	discovery.records = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"nearby"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No services found nearby.")
}

func TestNearbyCmd_RefreshFails(t *testing.T) {
	_, discovery, cleanup := setupTestServices()
	defer cleanup()
	discovery.refreshErr = domain.ErrDirectoryUnavailable

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"nearby"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
}

func TestNearbyCmd_ServiceNotConfigured(t *testing.T) {
	oldService := discoveryService
	discoveryService = nil
	defer func() {
		discoveryService = oldService
	}()

	rootCmd.SetArgs([]string{"nearby"})
	defer func() {
		rootCmd.SetArgs(nil)
		resetNearbyFlags()
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discovery service not configured")
}
