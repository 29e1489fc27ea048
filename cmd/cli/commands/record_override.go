package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// RecordOverrideCmd creates the recordOverride command
func RecordOverrideCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordOverride <plan_id> <category> [crop_id]",
		Short: "Record what was actually planted on a sub-bed, overriding the plan",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("plan_id must be a number: %w", err)
			}
			category := args[1]

			var cropID *int64
			if len(args) == 3 {
				id, err := strconv.ParseInt(args[2], 10, 64)
				if err != nil {
					return fmt.Errorf("crop_id must be a number: %w", err)
				}
				cropID = &id
			}

			notes, _ := cmd.Flags().GetString("notes")

			if err := services.RecordOverride(app.Ctx, app.Database, app.Logger, planID, category, cropID, notes); err != nil {
				return err
			}

			fmt.Printf("\n✓ Override recorded for plan %d\n", planID)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Free-text note attached to the override")

	return cmd
}
