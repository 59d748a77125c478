package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/pkg/core/services"
)

// AllocateBedsCmd creates the allocateBeds command
func AllocateBedsCmd(getApp func() *AppContext) *cobra.Command {
	var campID string
	var personnelIDs []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "allocateBeds",
		Short: "Allocate beds to personnel in a camp",
		Long:  "Run the allocation engine to assign the given personnel to beds in the target camp and commit the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp()

			app.Logger.Debug("allocateBeds command",
				zap.String("camp", campID),
				zap.Strings("personnel", personnelIDs),
				zap.Bool("dry_run", dryRun))

			result, err := services.AllocateBeds(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				campID,
				personnelIDs,
				dryRun,
			)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			renderOutcome(result.Camp.Name, result.Outcome, dryRun)

			if result.Commit != nil {
				fmt.Printf("💾 Commit: %d applied, %d failed\n", result.Commit.Applied, result.Commit.Failed)
				for _, failure := range result.Commit.Failures {
					kind := "backend error"
					if failure.StateConflict {
						kind = "bed changed since snapshot"
					}
					fmt.Printf("  %s✗%s %s → bed %s (%s stage, %s): %v\n",
						colorYellow, colorReset,
						failure.PersonID, failure.BedID, failure.Stage, kind, failure.Err)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&campID, "camp", "", "Target camp ID (required)")
	cmd.Flags().StringSliceVar(&personnelIDs, "personnel", nil, "Comma-separated personnel IDs to allocate (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the proposal without committing it")
	cmd.MarkFlagRequired("camp")
	cmd.MarkFlagRequired("personnel")

	return cmd
}
