package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
)

// DefineSequenceCmd creates the defineSequence command
func DefineSequenceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defineSequence <category>...",
		Short: "Replace the rotation sequence with the given category order",
		Long: `Replace the rotation sequence. Categories must be unique and drawn
from: Leaf, Seed, Root, Fruit, Cover. Example:

  defineSequence Leaf Seed Root Fruit Cover`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seen := make(map[string]bool, len(args))
			for _, category := range args {
				if !rotation.IsValidCategory(rotation.Category(category)) {
					return fmt.Errorf("unknown category %q", category)
				}
				if seen[category] {
					return fmt.Errorf("category %q given twice", category)
				}
				seen[category] = true
			}

			if err := app.Database.SaveRotationSequence(app.Ctx, args); err != nil {
				return err
			}

			fmt.Printf("\n✓ Rotation sequence set: %s\n", strings.Join(args, " → "))
			return nil
		},
	}
}
