package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
)

var (
	nearbyCategory string
	nearbyQuery    string
	nearbyJSON     bool
	nearbyLocate   bool
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Discover emergency services around the current position",
	Long: `Searches for nearby emergency services (police stations and
hospitals) around the current position and prints them ranked by
distance. Seeded fixed facilities are always included.

Without a prior position fix the configured fallback center is used;
pass --locate to resolve a fresh position first.`,
	Args: cobra.NoArgs,
	RunE: runNearby,
}

func init() {
	nearbyCmd.Flags().StringVarP(&nearbyCategory, "category", "c", "", "restrict to one category (police or hospital)")
	nearbyCmd.Flags().StringVarP(&nearbyQuery, "query", "q", "", "filter by name or address text")
	nearbyCmd.Flags().BoolVar(&nearbyJSON, "json", false, "output results as JSON")
	nearbyCmd.Flags().BoolVar(&nearbyLocate, "locate", false, "resolve a fresh position before searching")
	rootCmd.AddCommand(nearbyCmd)
}

func runNearby(cmd *cobra.Command, _ []string) error {
	if discoveryService == nil {
		return errors.New("discovery service not configured")
	}

	if nearbyCategory != "" {
		if _, ok := domain.ParseCategory(nearbyCategory); !ok {
			return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, nearbyCategory)
		}
	}

	center := rankingCenter()
	if nearbyLocate {
		if trackingService == nil {
			return errors.New("tracking service not configured")
		}
		snap, err := trackingService.RequestOnce(cmd.Context())
		if err != nil {
			return fmt.Errorf("position request failed: %w", err)
		}
		center = snap.Coordinate
	}

	if err := discoveryService.Refresh(cmd.Context(), center, nil); err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	discoveryService.SetFilter(nearbyCategory)
	discoveryService.SetQuery(nearbyQuery)

	records := discoveryService.Visible()

	if nearbyJSON {
		return outputNearbyJSON(cmd, records)
	}

	return outputNearbyTable(cmd, center, records)
}

func outputNearbyJSON(cmd *cobra.Command, records []domain.ServiceRecord) error {
	if records == nil {
		records = []domain.ServiceRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputNearbyTable(cmd *cobra.Command, center domain.Coordinate, records []domain.ServiceRecord) error {
	if len(records) == 0 {
		cmd.Println("No services found nearby.")
		return nil
	}

	cmd.Printf("Services near %s:\n", center.String())
	cmd.Println()
	for i := range records {
		rec := &records[i]
		cmd.Printf("  [%d] %s (%s, %.2f km)\n", i+1, rec.Name, rec.Category, rec.DistanceKm)
		if rec.Address != "" {
			cmd.Printf("      %s\n", rec.Address)
		}
		if rec.Phone != "" {
			cmd.Printf("      Call: %s\n", rec.Phone)
		}
		cmd.Println()
	}

	return nil
}
