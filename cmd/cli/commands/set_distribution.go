package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// SetDistributionCmd creates the setDistribution command
func SetDistributionCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setDistribution <garden_id> <cycle> <crop_id=pct>...",
		Short: "Replace the distribution profile for a garden's cycle",
		Long: `Replace the percentage targets for one garden and cycle.
Each target is given as crop_id=percentage, e.g.:

  setDistribution 1 2026A 3=50 7=30 9=20`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}
			cycle := args[1]

			var targets []services.DistributionTarget
			for _, arg := range args[2:] {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid target %q, expected crop_id=pct", arg)
				}
				cropID, err := strconv.ParseInt(parts[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid crop id in %q: %w", arg, err)
				}
				pct, err := strconv.ParseFloat(parts[1], 64)
				if err != nil {
					return fmt.Errorf("invalid percentage in %q: %w", arg, err)
				}
				targets = append(targets, services.DistributionTarget{CropID: cropID, Percentage: pct})
			}

			if err := services.SaveDistribution(app.Ctx, app.Database, app.Logger, gardenID, cycle, targets); err != nil {
				return err
			}

			fmt.Printf("\n✓ Distribution saved for garden %d, cycle %s (%d targets)\n", gardenID, cycle, len(targets))
			return nil
		},
	}
}
