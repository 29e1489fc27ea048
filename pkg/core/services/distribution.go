package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/db"
)

// DistributionTarget is one crop's percentage target as submitted by
// the operator for a garden's cycle.
type DistributionTarget struct {
	CropID     int64
	Percentage float64
}

// SaveDistribution replaces the distribution profile for one garden and
// cycle. Percentages within a category need not sum to 100 — the
// resolver normalizes against the category's slot count — but each one
// must be a sane percentage on its own.
func SaveDistribution(ctx context.Context, database db.TxDatabase, logger *zap.Logger, gardenID int64, cycle string, targets []DistributionTarget) error {
	for _, t := range targets {
		if t.Percentage < 0 || t.Percentage > 100 {
			return fmt.Errorf("percentage for crop %d out of range: %.1f", t.CropID, t.Percentage)
		}
	}

	return database.InTx(ctx, func(store db.Database) error {
		profiles := make([]db.DistributionProfile, len(targets))
		for i, t := range targets {
			profiles[i] = db.DistributionProfile{
				GardenID:         gardenID,
				Cycle:            cycle,
				CropID:           t.CropID,
				TargetPercentage: t.Percentage,
			}
		}

		if err := store.ReplaceDistributionProfiles(ctx, gardenID, cycle, profiles); err != nil {
			return err
		}

		logger.Info("Distribution saved",
			zap.Int64("garden_id", gardenID),
			zap.String("cycle", cycle),
			zap.Int("target_count", len(targets)))

		return nil
	})
}
