package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "aegis", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")

	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCmd_VerboseEnablesLogging(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()
	defer logger.SetVerbose(false)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--verbose", "version"})
	defer func() {
		rootCmd.SetArgs(nil)
		verbose = false
	}()

	require.NoError(t, rootCmd.Execute())

	assert.True(t, logger.IsVerbose())
}

func TestRankingCenter_UsesCurrentSnapshot(t *testing.T) {
	_, _, cleanup := setupTestServices()
	defer cleanup()

	assert.Equal(t, domain.Coordinate{Lat: 28.6139, Lng: 77.209}, rankingCenter())
}

func TestRankingCenter_FallsBackWithoutSnapshot(t *testing.T) {
	tracking, _, cleanup := setupTestServices()
	defer cleanup()
	tracking.snap = nil
	SetFallbackCenter(domain.Coordinate{Lat: 19.076, Lng: 72.8777})

	assert.Equal(t, domain.Coordinate{Lat: 19.076, Lng: 72.8777}, rankingCenter())
}

func TestRankingCenter_DefaultsWithoutService(t *testing.T) {
	oldService := trackingService
	oldCenter := fallbackCenter
	trackingService = nil
	fallbackCenter = domain.DefaultCenter
	defer func() {
		trackingService = oldService
		fallbackCenter = oldCenter
	}()

	assert.Equal(t, domain.DefaultCenter, rankingCenter())
}
