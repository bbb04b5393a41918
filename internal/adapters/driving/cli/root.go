package cli

import (
	"github.com/spf13/cobra"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driving"
	"github.com/aegis-labs/aegis-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired into the commands by the composition root.
var (
	trackingService  driving.TrackingService
	discoveryService driving.DiscoveryService

	trackingConfig domain.TrackingConfig
	fallbackCenter = domain.DefaultCenter
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "aegis",
	Short: "Live location tracking and nearby emergency service discovery",
	Long: `Aegis tracks your live position and discovers nearby emergency
services (police stations and hospitals) around it.

Run 'aegis locate' for a one-shot position fix, 'aegis nearby' to list
ranked services around you, 'aegis track' to follow position updates, or
'aegis tui' for the interactive live view.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// SetServices injects the driving services used by the commands.
func SetServices(tracking driving.TrackingService, discovery driving.DiscoveryService) {
	trackingService = tracking
	discoveryService = discovery
}

// SetTrackingConfig sets the tracking configuration commands start with.
func SetTrackingConfig(cfg domain.TrackingConfig) {
	trackingConfig = cfg
}

// SetFallbackCenter sets the center used before any position fix exists.
func SetFallbackCenter(center domain.Coordinate) {
	fallbackCenter = center
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// rankingCenter returns the best available center: the current snapshot
// when one exists, otherwise the configured fallback.
func rankingCenter() domain.Coordinate {
	if trackingService != nil {
		if snap := trackingService.Current(); snap != nil {
			return snap.Coordinate
		}
	}
	return fallbackCenter
}
