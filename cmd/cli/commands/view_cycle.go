package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// ViewCycleCmd creates the viewCycle command
func ViewCycleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewCycle <garden_id> [cycle]",
		Short: "Show a cycle's plan rows (defaults to the latest cycle)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}

			var cycle string
			if len(args) == 2 {
				cycle = args[1]
			} else {
				cycles, err := app.Database.GetCycles(app.Ctx, gardenID)
				if err != nil {
					return err
				}
				if len(cycles) == 0 {
					return fmt.Errorf("garden %d has no cycles", gardenID)
				}
				cycle = cycles[0]
			}

			plans, err := app.Database.GetCyclePlans(app.Ctx, gardenID, cycle)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				return fmt.Errorf("no plans for garden %d cycle %s", gardenID, cycle)
			}

			fmt.Printf("\nGarden %s — cycle %s (%d sub-beds):\n\n", plans[0].GardenCode, cycle, len(plans))
			for _, plan := range plans {
				crop := plan.EffectiveCropName()
				if crop == "" {
					crop = "-"
				}
				marker := " "
				if plan.IsOverride {
					marker = "*"
				}
				fmt.Printf("  P%02d-S%d %s %-6s %-20s %s\n",
					plan.BedNumber, plan.Position, marker,
					plan.EffectiveCategory(), crop, plan.Notes)
			}
			fmt.Println("\n  (* = operator override)")

			return nil
		},
	}
}
