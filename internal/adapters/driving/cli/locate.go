package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

var locateJSON bool

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Resolve the current position once",
	Long: `Issues a single position request and prints the resolved position
with its reverse-geocoded address. The request is independent of any
running tracking schedule.`,
	Args: cobra.NoArgs,
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().BoolVar(&locateJSON, "json", false, "output the snapshot as JSON")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, _ []string) error {
	if trackingService == nil {
		return errors.New("tracking service not configured")
	}

	snap, err := trackingService.RequestOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("position request failed: %w", err)
	}

	if locateJSON {
		return outputSnapshotJSON(cmd, snap)
	}

	cmd.Println(snap.ShareText())
	return nil
}

func outputSnapshotJSON(cmd *cobra.Command, snap *domain.PositionSnapshot) error {
	payload := map[string]any{
		"lat":         snap.Coordinate.Lat,
		"lng":         snap.Coordinate.Lng,
		"accuracy_m":  snap.AccuracyMeters,
		"captured_at": snap.CapturedAt,
		"address":     snap.Address(),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
