package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SeedCmd creates the seed command
func SeedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the default rotation sequence, crops and reference gardens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Database.Seed(app.Ctx); err != nil {
				return err
			}

			fmt.Println("\n✓ Seed data is in place")
			return nil
		},
	}
}
