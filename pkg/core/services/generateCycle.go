package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/db"
)

// GenerateNextCycle advances a garden by one cycle: every non-reserve
// sub-bed of the most recent cycle gets a new plan row whose category
// is the successor of its effective category in the rotation sequence.
// Crops are left unassigned for AssignCrops to fill in later.
//
// The whole operation runs in one transaction: either all new rows and
// the current-cycle pointer land together, or nothing does. The new
// cycle identifier is returned on success.
func GenerateNextCycle(ctx context.Context, database db.TxDatabase, logger *zap.Logger, gardenID int64) (string, error) {
	var newCycle string

	err := database.InTx(ctx, func(store db.Database) error {
		cycles, err := store.GetCycles(ctx, gardenID)
		if err != nil {
			return fmt.Errorf("failed to fetch cycles: %w", err)
		}
		if len(cycles) == 0 {
			return fmt.Errorf("%w: garden %d", ErrNoPriorCycle, gardenID)
		}
		latest := cycles[0]

		logger.Debug("Generating next cycle",
			zap.Int64("garden_id", gardenID),
			zap.String("latest_cycle", latest))

		plans, err := store.GetCyclePlans(ctx, gardenID, latest)
		if err != nil {
			return fmt.Errorf("failed to fetch plans for cycle %s: %w", latest, err)
		}
		if len(plans) == 0 {
			return fmt.Errorf("%w: garden %d cycle %s", ErrEmptyCycle, gardenID, latest)
		}

		sequence, err := loadSequence(ctx, store)
		if err != nil {
			return err
		}
		nextCategory, err := rotation.NextCategoryMap(sequence)
		if err != nil {
			return err
		}

		cadence, err := loadCadence(ctx, store)
		if err != nil {
			return err
		}
		newCycle, err = rotation.NextCycleID(latest, cadence)
		if err != nil {
			return err
		}

		existing, err := store.GetCyclePlans(ctx, gardenID, newCycle)
		if err != nil {
			return fmt.Errorf("failed to check for existing plans: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: garden %d cycle %s", ErrCycleAlreadyExists, gardenID, newCycle)
		}

		var newPlans []db.CyclePlan
		for _, plan := range plans {
			if plan.IsReserve {
				continue
			}

			effective := rotation.Category(plan.EffectiveCategory())
			category, ok := nextCategory[effective]
			if !ok {
				// Data outside the configured sequence. Fall back to the
				// sequence's first category rather than failing the whole
				// cycle, but leave a trace: this may hide an integrity bug.
				logger.Warn("Sub-bed category not in rotation sequence, falling back to first",
					zap.Int64("sub_bed_id", plan.SubBedID),
					zap.String("category", string(effective)),
					zap.String("fallback", string(sequence[0])))
				category = sequence[0]
			}

			newPlans = append(newPlans, db.CyclePlan{
				SubBedID:        plan.SubBedID,
				GardenID:        gardenID,
				Cycle:           newCycle,
				PlannedCategory: string(category),
			})
		}

		if err := store.InsertCyclePlans(ctx, newPlans); err != nil {
			return fmt.Errorf("failed to insert plans for cycle %s: %w", newCycle, err)
		}

		if err := store.UpdateSetting(ctx, db.SettingCurrentCycle, newCycle); err != nil {
			return fmt.Errorf("failed to update current cycle: %w", err)
		}

		logger.Info("Next cycle generated",
			zap.Int64("garden_id", gardenID),
			zap.String("cycle", newCycle),
			zap.Int("plan_count", len(newPlans)))

		return nil
	})
	if err != nil {
		return "", err
	}
	return newCycle, nil
}

// loadSequence reads the configured rotation sequence as engine categories.
func loadSequence(ctx context.Context, store db.Database) ([]rotation.Category, error) {
	steps, err := store.GetRotationSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rotation sequence: %w", err)
	}

	sequence := make([]rotation.Category, len(steps))
	for i, step := range steps {
		sequence[i] = rotation.Category(step.Category)
	}
	return sequence, nil
}

// loadCadence reads the cycles-per-year setting, defaulting to 2 as the
// original deployment did.
func loadCadence(ctx context.Context, store db.Database) (int, error) {
	value, err := store.GetSetting(ctx, db.SettingCyclesPerYear, "2")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch cycles-per-year setting: %w", err)
	}

	cadence, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid cycles-per-year setting %q: %w", value, err)
	}
	return cadence, nil
}
