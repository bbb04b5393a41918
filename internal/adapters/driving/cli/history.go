package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// trackStore is wired by the composition root.
var trackStore driven.TrackStore

// SetTrackStore injects the track log store.
func SetTrackStore(store driven.TrackStore) {
	trackStore = store
}

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent position history",
	Long:  `Prints the most recent recorded position snapshots, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of snapshots")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if trackStore == nil {
		return errors.New("track store not configured")
	}

	snaps, err := trackStore.RecentSnapshots(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(snaps) == 0 {
		cmd.Println("No position history recorded.")
		return nil
	}

	for i := range snaps {
		snap := &snaps[i]
		cmd.Printf("  [%s] %s\n", snap.CapturedAt.Local().Format(time.DateTime), snap.ShareText())
	}
	return nil
}
