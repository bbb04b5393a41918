package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/aegis-labs/aegis-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive live view",
	Long: `Launch the interactive terminal view. Tracking starts automatically
and nearby services are re-ranked as the position updates.

Controls:
  ↑/k, ↓/j - Navigate services
  f        - Cycle category filter
  /        - Filter by name or address
  c        - Call selected service
  d        - Directions to selected service
  r        - Refresh nearby services
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery so a rendering bug leaves a stack trace behind
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if trackingService == nil || discoveryService == nil {
		return errors.New("services not configured")
	}

	app, err := tui.NewApp(trackingService, discoveryService, rankingCenter())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	// The live view needs position updates flowing, unless the host
	// configured tracking.auto_start off.
	if trackingConfig.AutoStart {
		if err := trackingService.Start(cmd.Context(), trackingConfig); err != nil {
			return fmt.Errorf("failed to start tracking: %w", err)
		}
		defer trackingService.Stop()
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
