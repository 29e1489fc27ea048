package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/db"
)

// InitialAllocate proposes categories and crops for a garden that has
// no cycle history yet, walking beds in physical order and splitting
// slots across categories and crops by quota. defaults maps crop name
// to a default target percentage; crops absent from it share their
// category's quota evenly.
//
// rng drives the randomized starting offset into the rotation sequence,
// the engine's one intentional source of non-determinism. Pass a seeded
// source to reproduce a proposal.
func InitialAllocate(ctx context.Context, database db.Database, logger *zap.Logger, gardenID int64, defaults map[string]float64, rng *rand.Rand) (map[int64]rotation.SlotAssignment, error) {
	garden, err := database.GetGarden(ctx, gardenID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch garden: %w", err)
	}
	if garden == nil {
		return nil, fmt.Errorf("%w: %d", ErrGardenNotFound, gardenID)
	}

	subBeds, err := database.GetSubBeds(ctx, gardenID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sub-beds: %w", err)
	}

	sequence, err := loadSequence(ctx, database)
	if err != nil {
		return nil, err
	}
	if len(sequence) == 0 {
		return nil, rotation.ErrSequenceNotConfigured
	}

	crops, err := database.GetCrops(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crops: %w", err)
	}

	cropDefaults := make(map[int64]float64)
	for _, c := range crops {
		if pct, ok := defaults[c.Name]; ok && pct > 0 {
			cropDefaults[c.ID] = pct
		}
	}

	input := rotation.BootstrapInput{
		Beds:     groupBeds(subBeds),
		Sequence: sequence,
		Crops:    cropInfos(crops),
		Defaults: cropDefaults,
	}

	result := rotation.InitialAllocate(input, rng)

	logger.Info("Initial allocation computed",
		zap.Int64("garden_id", gardenID),
		zap.String("garden_code", garden.Code),
		zap.Int("sub_beds", len(subBeds)),
		zap.Int("allocated", len(result)))

	return result, nil
}

// SaveBootstrap persists an initial allocation as the first cycle's
// plan rows. Bootstrap data is ground truth, so both the planned and
// actual fields are filled. Fails with ErrCycleAlreadyExists when the
// garden already has rows for the cycle.
func SaveBootstrap(ctx context.Context, database db.TxDatabase, logger *zap.Logger, gardenID int64, cycle string, assignments map[int64]rotation.SlotAssignment) error {
	return database.InTx(ctx, func(store db.Database) error {
		existing, err := store.GetCyclePlans(ctx, gardenID, cycle)
		if err != nil {
			return fmt.Errorf("failed to check for existing plans: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: garden %d cycle %s", ErrCycleAlreadyExists, gardenID, cycle)
		}

		subBedIDs := make([]int64, 0, len(assignments))
		for id := range assignments {
			subBedIDs = append(subBedIDs, id)
		}
		sort.Slice(subBedIDs, func(a, b int) bool { return subBedIDs[a] < subBedIDs[b] })

		plans := make([]db.CyclePlan, 0, len(assignments))
		for _, subBedID := range subBedIDs {
			assignment := assignments[subBedID]
			plan := db.CyclePlan{
				SubBedID:        subBedID,
				GardenID:        gardenID,
				Cycle:           cycle,
				PlannedCategory: string(assignment.Category),
				ActualCategory:  string(assignment.Category),
			}
			if assignment.CropID != 0 {
				cropID := assignment.CropID
				plan.PlannedCropID = &cropID
				plan.ActualCropID = &cropID
			}
			plans = append(plans, plan)
		}

		if err := store.InsertCyclePlans(ctx, plans); err != nil {
			return fmt.Errorf("failed to insert bootstrap plans: %w", err)
		}

		if err := store.UpdateSetting(ctx, db.SettingCurrentCycle, cycle); err != nil {
			return fmt.Errorf("failed to update current cycle: %w", err)
		}

		logger.Info("Bootstrap saved",
			zap.Int64("garden_id", gardenID),
			zap.String("cycle", cycle),
			zap.Int("plan_count", len(plans)))

		return nil
	})
}

// groupBeds splits an ordered sub-bed list into per-bed groups,
// preserving physical order.
func groupBeds(subBeds []db.SubBed) []rotation.BootstrapBed {
	var beds []rotation.BootstrapBed
	for _, sb := range subBeds {
		if len(beds) == 0 || beds[len(beds)-1].Number != sb.BedNumber {
			beds = append(beds, rotation.BootstrapBed{Number: sb.BedNumber})
		}
		last := &beds[len(beds)-1]
		last.SubBedIDs = append(last.SubBedIDs, sb.ID)
	}
	return beds
}
