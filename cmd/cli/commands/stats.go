package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/core/services"
)

// StatsCmd creates the stats command
func StatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show global garden and crop statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := services.GardenStatistics(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nGardens: %d   Beds: %d   Sub-beds: %d (%d active, %d reserve)\n\n",
				len(stats.Gardens), stats.TotalBeds, stats.TotalSubBeds,
				stats.ActiveSubBeds, stats.ReserveSubBeds)

			for _, gs := range stats.Gardens {
				fmt.Printf("  %-4s %-20s %3d beds  %3d sub-beds (%d active, %d reserve)\n",
					gs.Garden.Code, gs.Garden.Name, gs.Garden.Beds,
					gs.TotalSubBeds, gs.ActiveSubBeds, gs.ReserveSubBeds)
			}

			fmt.Printf("\nCrops in current cycles:\n")
			for _, category := range rotation.Categories {
				crops := stats.CropsByCategory[category]
				if len(crops) == 0 {
					continue
				}
				fmt.Printf("\n  %s:\n", category)
				for _, crop := range crops {
					fmt.Printf("    %-20s %d\n", crop.CropName, crop.Count)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
