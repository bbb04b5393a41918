package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	trackCount    int
	trackInterval time.Duration
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Follow live position updates",
	Long: `Starts scheduled tracking and prints each published position snapshot
until the update count is reached or the command is interrupted.

The first request is issued immediately; later ones follow the interval.
Transient position failures are retried with backoff while the last good
position stays current.`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVarP(&trackCount, "count", "n", 0, "stop after this many updates (0 = until interrupted)")
	trackCmd.Flags().DurationVarP(&trackInterval, "interval", "i", 0, "override the scheduled request interval")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, _ []string) error {
	if trackingService == nil {
		return errors.New("tracking service not configured")
	}

	cfg := trackingConfig
	if trackInterval > 0 {
		cfg.Interval = trackInterval
	}

	updates := trackingService.Subscribe()

	if err := trackingService.Start(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("failed to start tracking: %w", err)
	}
	defer trackingService.Stop()

	seen := 0
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			cmd.Printf("[%s] %s\n", snap.CapturedAt.Format(time.TimeOnly), snap.ShareText())
			seen++
			if trackCount > 0 && seen >= trackCount {
				return nil
			}
		}
	}
}
