package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// SnapshotCmd creates the snapshot command
func SnapshotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <garden_id> <cycle>",
		Short: "Write a JSON snapshot of a cycle's effective assignments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}
			cycle := args[1]

			path, err := services.SaveSnapshot(app.Ctx, app.Database, app.Logger, gardenID, cycle, app.Cfg.SnapshotDir)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Snapshot written: %s\n", path)
			return nil
		},
	}
}
