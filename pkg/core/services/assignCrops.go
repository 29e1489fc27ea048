package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/db"
)

// AssignCrops fills in the planned crop for every plan row of one
// garden and cycle, per category, following the distribution profile
// percentages and penalizing crops that occupied the same sub-bed too
// recently. Categories without any profile row are skipped: their
// sub-beds keep a category but no crop.
//
// Re-running on the same cycle is idempotent — previously planned crops
// are cleared first, so changed percentages yield exactly the new
// split. The whole assignment commits in one transaction or not at all.
func AssignCrops(ctx context.Context, database db.TxDatabase, logger *zap.Logger, gardenID int64, cycle string) error {
	return database.InTx(ctx, func(store db.Database) error {
		plans, err := store.GetCyclePlans(ctx, gardenID, cycle)
		if err != nil {
			return fmt.Errorf("failed to fetch plans for cycle %s: %w", cycle, err)
		}
		if len(plans) == 0 {
			return fmt.Errorf("%w: garden %d cycle %s", ErrEmptyCycle, gardenID, cycle)
		}

		if err := store.ClearPlannedCrops(ctx, gardenID, cycle); err != nil {
			return err
		}

		crops, err := store.GetCrops(ctx, "")
		if err != nil {
			return fmt.Errorf("failed to fetch crops: %w", err)
		}

		profiles, err := store.GetDistributionProfiles(ctx, gardenID, cycle)
		if err != nil {
			return fmt.Errorf("failed to fetch distribution profiles: %w", err)
		}

		history, err := loadHistory(ctx, store, gardenID, cycle, crops)
		if err != nil {
			return err
		}

		input := rotation.AssignmentInput{
			Crops:   cropInfos(crops),
			History: history,
		}
		for _, plan := range plans {
			if plan.IsReserve {
				continue
			}
			input.Slots = append(input.Slots, rotation.PlanSlot{
				SubBedID: plan.SubBedID,
				Category: rotation.Category(plan.PlannedCategory),
			})
		}
		for _, p := range profiles {
			input.Targets = append(input.Targets, rotation.Target{
				CropID:     p.CropID,
				Percentage: p.TargetPercentage,
			})
		}

		assigned := rotation.AssignCrops(input)

		for _, plan := range plans {
			cropID, ok := assigned[plan.SubBedID]
			if !ok {
				continue
			}
			id := cropID
			if err := store.UpdatePlannedCrop(ctx, plan.ID, &id); err != nil {
				return err
			}
		}

		logger.Info("Crops assigned",
			zap.Int64("garden_id", gardenID),
			zap.String("cycle", cycle),
			zap.Int("assigned", len(assigned)),
			zap.Int("slots", len(input.Slots)))

		return nil
	})
}

// loadHistory builds the per-sub-bed occupancy history consulted by the
// scoring function: up to rotation.Lookback cycles strictly older than
// the one being assigned, most recent first. Effective values win over
// planned ones, matching what actually grew in the ground.
func loadHistory(ctx context.Context, store db.Database, gardenID int64, cycle string, crops []db.Crop) (map[int64][]rotation.HistoryEntry, error) {
	cycles, err := store.GetCycles(ctx, gardenID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycles: %w", err)
	}

	var prior []string
	for _, c := range cycles {
		if c < cycle {
			prior = append(prior, c)
		}
		if len(prior) == rotation.Lookback {
			break
		}
	}

	cropByID := make(map[int64]db.Crop, len(crops))
	for _, c := range crops {
		cropByID[c.ID] = c
	}

	history := make(map[int64][]rotation.HistoryEntry)
	for i, c := range prior {
		plans, err := store.GetCyclePlans(ctx, gardenID, c)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch history for cycle %s: %w", c, err)
		}

		for _, plan := range plans {
			cropID := plan.EffectiveCropID()
			if cropID == nil {
				continue
			}

			entry := rotation.HistoryEntry{
				CyclesAgo: i + 1,
				Category:  rotation.Category(plan.EffectiveCategory()),
				CropID:    *cropID,
			}
			if crop, ok := cropByID[*cropID]; ok {
				entry.Family = crop.Family
				entry.Species = crop.Species
			}
			history[plan.SubBedID] = append(history[plan.SubBedID], entry)
		}
	}

	return history, nil
}

// cropInfos converts crop records into the engine's metadata shape.
func cropInfos(crops []db.Crop) []rotation.CropInfo {
	infos := make([]rotation.CropInfo, len(crops))
	for i, c := range crops {
		infos[i] = rotation.CropInfo{
			ID:       c.ID,
			Name:     c.Name,
			Category: rotation.Category(c.Category),
			Family:   c.Family,
			Species:  c.Species,
		}
	}
	return infos
}
