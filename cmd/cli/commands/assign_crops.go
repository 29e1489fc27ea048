package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// AssignCropsCmd creates the assignCrops command
func AssignCropsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assignCrops <garden_id> <cycle>",
		Short: "Assign crops to a cycle's sub-beds from the distribution profile and history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}
			cycle := args[1]

			if err := services.AssignCrops(app.Ctx, app.Database, app.Logger, gardenID, cycle); err != nil {
				return err
			}

			fmt.Printf("\n✓ Crops assigned for garden %d, cycle %s\n", gardenID, cycle)
			return nil
		},
	}
}
