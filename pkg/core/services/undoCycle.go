package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// UndoCycle rolls back a garden's most recent cycle: its plan rows are
// deleted and the current-cycle pointer moves back to the previous
// cycle (or is cleared when none remains). Returns the identifier of
// the removed cycle. This is the only path that ever deletes plan rows.
func UndoCycle(ctx context.Context, database db.TxDatabase, logger *zap.Logger, gardenID int64) (string, error) {
	var undone string

	err := database.InTx(ctx, func(store db.Database) error {
		cycles, err := store.GetCycles(ctx, gardenID)
		if err != nil {
			return fmt.Errorf("failed to fetch cycles: %w", err)
		}
		if len(cycles) == 0 {
			return fmt.Errorf("%w: garden %d", ErrNoPriorCycle, gardenID)
		}
		undone = cycles[0]

		deleted, err := store.DeleteCyclePlans(ctx, gardenID, undone)
		if err != nil {
			return err
		}

		previous := ""
		if len(cycles) > 1 {
			previous = cycles[1]
		}
		if err := store.UpdateSetting(ctx, db.SettingCurrentCycle, previous); err != nil {
			return fmt.Errorf("failed to update current cycle: %w", err)
		}

		logger.Info("Cycle undone",
			zap.Int64("garden_id", gardenID),
			zap.String("cycle", undone),
			zap.String("previous", previous),
			zap.Int64("deleted_plans", deleted))

		return nil
	})
	if err != nil {
		return "", err
	}
	return undone, nil
}
