package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/pkg/core/services"
)

// ViewOccupancyCmd creates the viewOccupancy command
func ViewOccupancyCmd(getApp func() *AppContext) *cobra.Command {
	var campID string

	cmd := &cobra.Command{
		Use:   "viewOccupancy",
		Short: "Show per-room occupancy for a camp",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp()

			app.Logger.Debug("viewOccupancy command", zap.String("camp", campID))

			result, err := services.ViewOccupancy(app.Ctx, app.Database, app.Logger, campID)
			if err != nil {
				return fmt.Errorf("failed to build occupancy summary: %w", err)
			}

			fmt.Printf("\n🏕️  Occupancy - %s (%s)\n\n", result.Camp.Name, result.Camp.Type)
			fmt.Printf("Beds: %d total, %s%d occupied%s, %d reserved, %s%d available%s\n\n",
				result.TotalBeds,
				colorYellow, result.OccupiedBeds, colorReset,
				result.ReservedBeds,
				colorGreen, result.AvailableBeds, colorReset)

			fmt.Printf("%s%-6s %-8s %-16s %-10s %s%s\n", colorBold,
				"Floor", "Room", "Type", "Occupied", "Occupants", colorReset)
			for _, row := range result.Rooms {
				fmt.Printf("%-6d %-8s %-16s %-10s %s\n",
					row.FloorNumber,
					row.RoomNumber,
					row.OccupantType,
					fmt.Sprintf("%d/%d", row.Occupied, row.Capacity),
					strings.Join(row.Occupants, ", "))
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&campID, "camp", "", "Camp ID (required)")
	cmd.MarkFlagRequired("camp")

	return cmd
}
