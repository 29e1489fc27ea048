package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// GenerateCycleCmd creates the generateCycle command
func GenerateCycleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateCycle <garden_id>",
		Short: "Generate the next cycle's plan rows by advancing every sub-bed's category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}

			snapshot, _ := cmd.Flags().GetBool("snapshot")

			// Snapshot the outgoing cycle before it is superseded.
			if snapshot {
				cycles, err := app.Database.GetCycles(app.Ctx, gardenID)
				if err != nil {
					return err
				}
				if len(cycles) > 0 {
					path, err := services.SaveSnapshot(app.Ctx, app.Database, app.Logger, gardenID, cycles[0], app.Cfg.SnapshotDir)
					if err != nil {
						return err
					}
					fmt.Printf("Snapshot saved: %s\n", path)
				}
			}

			newCycle, err := services.GenerateNextCycle(app.Ctx, app.Database, app.Logger, gardenID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cycle %s generated for garden %d\n", newCycle, gardenID)
			fmt.Println("Categories are set; run assignCrops to fill in crops.")
			return nil
		},
	}

	cmd.Flags().Bool("snapshot", true, "Snapshot the current cycle before generating the next one")

	return cmd
}
