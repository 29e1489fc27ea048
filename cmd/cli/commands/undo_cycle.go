package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// UndoCycleCmd creates the undoCycle command
func UndoCycleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undoCycle <garden_id>",
		Short: "Delete a garden's most recent cycle and move the pointer back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}

			undone, err := services.UndoCycle(app.Ctx, app.Database, app.Logger, gardenID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cycle %s removed for garden %d\n", undone, gardenID)
			return nil
		},
	}
}
