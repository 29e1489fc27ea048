package commands

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/core/services"
	"github.com/hbiaou/crop-rotation/pkg/db"
)

// BootstrapCmd creates the bootstrap command: first-time allocation of
// categories and crops for a garden with no cycle history
func BootstrapCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bootstrap <garden_id>",
		Short: "Propose and save the initial category/crop allocation for a garden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gardenID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("garden_id must be a number: %w", err)
			}

			cycle, _ := cmd.Flags().GetString("cycle")
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if cycle == "" {
				cadence, err := cadenceSetting(app)
				if err != nil {
					return err
				}
				cycle, err = rotation.CurrentCycleID(time.Now(), cadence)
				if err != nil {
					return err
				}
			}

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewSource(seed))
			}

			garden, err := app.Database.GetGarden(app.Ctx, gardenID)
			if err != nil {
				return err
			}
			if garden == nil {
				return fmt.Errorf("garden %d not found", gardenID)
			}

			defaults := app.Cfg.DistributionDefaults[garden.Code]
			assignments, err := services.InitialAllocate(app.Ctx, app.Database, app.Logger, gardenID, defaults, rng)
			if err != nil {
				return err
			}

			printAssignments(app, gardenID, assignments)

			if dryRun {
				fmt.Println("Dry run: nothing saved.")
				return nil
			}

			if err := services.SaveBootstrap(app.Ctx, app.Database, app.Logger, gardenID, cycle, assignments); err != nil {
				return err
			}

			fmt.Printf("\n✓ Bootstrap saved for garden %s, cycle %s (%d sub-beds)\n", garden.Code, cycle, len(assignments))
			return nil
		},
	}

	cmd.Flags().String("cycle", "", "Cycle identifier (defaults to the current date's cycle)")
	cmd.Flags().Int64("seed", 0, "Seed for the randomized starting category")
	cmd.Flags().Bool("dry-run", false, "Print the proposal without saving")

	return cmd
}

func cadenceSetting(app *AppContext) (int, error) {
	value, err := app.Database.GetSetting(app.Ctx, db.SettingCyclesPerYear, "2")
	if err != nil {
		return 0, err
	}
	cadence, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid cycles-per-year setting %q: %w", value, err)
	}
	return cadence, nil
}

func printAssignments(app *AppContext, gardenID int64, assignments map[int64]rotation.SlotAssignment) {
	crops, err := app.Database.GetCrops(app.Ctx, "")
	if err != nil {
		return
	}
	cropNames := make(map[int64]string, len(crops))
	for _, c := range crops {
		cropNames[c.ID] = c.Name
	}

	subBeds, err := app.Database.GetSubBeds(app.Ctx, gardenID, true)
	if err != nil {
		return
	}
	sort.SliceStable(subBeds, func(a, b int) bool {
		if subBeds[a].BedNumber != subBeds[b].BedNumber {
			return subBeds[a].BedNumber < subBeds[b].BedNumber
		}
		return subBeds[a].Position < subBeds[b].Position
	})

	fmt.Printf("\nProposed allocation (%d sub-beds):\n\n", len(assignments))
	for _, sb := range subBeds {
		assignment, ok := assignments[sb.ID]
		if !ok {
			continue
		}
		crop := cropNames[assignment.CropID]
		if crop == "" {
			crop = "-"
		}
		fmt.Printf("  %s  %-6s %s\n", sb.DisplayID(), assignment.Category, crop)
	}
}
