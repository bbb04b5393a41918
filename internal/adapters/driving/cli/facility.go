package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aegis-labs/aegis-cli/internal/core/domain"
	"github.com/aegis-labs/aegis-cli/internal/core/ports/driven"
)

// facilityStore is wired by the composition root.
var facilityStore driven.FacilityStore

// SetFacilityStore injects the seed facility store.
func SetFacilityStore(store driven.FacilityStore) {
	facilityStore = store
}

var (
	facilityName     string
	facilityCategory string
	facilityLat      float64
	facilityLng      float64
	facilityAddress  string
	facilityPhone    string
)

var facilityCmd = &cobra.Command{
	Use:   "facility",
	Short: "Manage seeded fixed facilities",
	Long: `Manages the seeded fixed facilities that are always included in
nearby results regardless of what the live search returns.`,
}

var facilityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List seeded facilities",
	Args:  cobra.NoArgs,
	RunE:  runFacilityList,
}

var facilityAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Add or update a seeded facility",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacilityAdd,
}

var facilityRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a seeded facility",
	Args:  cobra.ExactArgs(1),
	RunE:  runFacilityRemove,
}

func init() {
	facilityAddCmd.Flags().StringVar(&facilityName, "name", "", "display name (required)")
	facilityAddCmd.Flags().StringVar(&facilityCategory, "category", string(domain.CategoryFixedFacility), "category (police, hospital or facility)")
	facilityAddCmd.Flags().Float64Var(&facilityLat, "lat", 0, "latitude (required)")
	facilityAddCmd.Flags().Float64Var(&facilityLng, "lng", 0, "longitude (required)")
	facilityAddCmd.Flags().StringVar(&facilityAddress, "address", "", "address text")
	facilityAddCmd.Flags().StringVar(&facilityPhone, "phone", "", "dialable number")
	_ = facilityAddCmd.MarkFlagRequired("name")
	_ = facilityAddCmd.MarkFlagRequired("lat")
	_ = facilityAddCmd.MarkFlagRequired("lng")

	facilityCmd.AddCommand(facilityListCmd)
	facilityCmd.AddCommand(facilityAddCmd)
	facilityCmd.AddCommand(facilityRemoveCmd)
	rootCmd.AddCommand(facilityCmd)
}

func runFacilityList(cmd *cobra.Command, _ []string) error {
	if facilityStore == nil {
		return errors.New("facility store not configured")
	}

	facilities, err := facilityStore.ListFacilities(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list facilities: %w", err)
	}

	if len(facilities) == 0 {
		cmd.Println("No seeded facilities.")
		return nil
	}

	for i := range facilities {
		f := &facilities[i]
		cmd.Printf("  %s: %s (%s) at %s\n", f.ID, f.Name, f.Category, f.Coordinate.String())
		if f.Phone != "" {
			cmd.Printf("      Call: %s\n", f.Phone)
		}
	}
	return nil
}

func runFacilityAdd(cmd *cobra.Command, args []string) error {
	if facilityStore == nil {
		return errors.New("facility store not configured")
	}

	category, ok := domain.ParseCategory(facilityCategory)
	if !ok || category == "" {
		category = domain.CategoryFixedFacility
	}

	facility := &domain.Facility{
		ID:         args[0],
		Name:       facilityName,
		Category:   category,
		Coordinate: domain.Coordinate{Lat: facilityLat, Lng: facilityLng},
		Address:    facilityAddress,
		Phone:      facilityPhone,
	}

	if err := facilityStore.SaveFacility(cmd.Context(), facility); err != nil {
		return fmt.Errorf("failed to save facility: %w", err)
	}

	cmd.Printf("Saved facility %s.\n", facility.ID)
	return nil
}

func runFacilityRemove(cmd *cobra.Command, args []string) error {
	if facilityStore == nil {
		return errors.New("facility store not configured")
	}

	if err := facilityStore.DeleteFacility(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove facility: %w", err)
	}

	cmd.Printf("Removed facility %s.\n", args[0])
	return nil
}
