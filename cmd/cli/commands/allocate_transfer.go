package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/pkg/core/services"
)

// AllocateTransferCmd creates the allocateTransfer command
func AllocateTransferCmd(getApp func() *AppContext) *cobra.Command {
	var transferID string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "allocateTransfer",
		Short: "Allocate beds for a transfer request",
		Long:  "Compute a bed allocation proposal for a pending transfer request and attach it to the request; beds are applied by the arrival workflow, not here",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp()

			app.Logger.Debug("allocateTransfer command",
				zap.String("transfer", transferID),
				zap.Bool("dry_run", dryRun))

			result, err := services.AllocateTransfer(
				app.Ctx,
				app.Database,
				app.Cfg,
				app.Logger,
				transferID,
				dryRun,
			)
			if err != nil {
				return fmt.Errorf("transfer allocation failed: %w", err)
			}

			renderOutcome(result.Camp.Name, result.Outcome, dryRun)

			if !dryRun {
				fmt.Printf("📦 Proposal attached to transfer %s (status: beds_allocated, %d bytes)\n\n",
					result.Transfer.ID, len(result.Payload))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&transferID, "transfer", "", "Transfer request ID (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the proposal without attaching it")
	cmd.MarkFlagRequired("transfer")

	return cmd
}
