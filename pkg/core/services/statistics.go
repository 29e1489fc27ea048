package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/pkg/core/rotation"
	"github.com/hbiaou/crop-rotation/pkg/db"
)

// GardenStats summarises one garden's physical layout.
type GardenStats struct {
	Garden         db.Garden
	TotalSubBeds   int
	ActiveSubBeds  int
	ReserveSubBeds int
}

// CropCount is the number of sub-beds a crop occupies across all
// gardens' latest cycles.
type CropCount struct {
	CropName string
	Count    int
}

// Statistics aggregates garden and crop figures across the whole
// system, from each garden's most recent cycle.
type Statistics struct {
	Gardens        []GardenStats
	TotalBeds      int
	TotalSubBeds   int
	ActiveSubBeds  int
	ReserveSubBeds int

	// CropsByCategory counts occupied sub-beds per crop, from effective
	// assignments in each garden's latest cycle, reserves excluded.
	CropsByCategory map[rotation.Category][]CropCount
}

// GardenStatistics computes the global statistics overview.
func GardenStatistics(ctx context.Context, database db.Database, logger *zap.Logger) (*Statistics, error) {
	gardens, err := database.GetGardens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gardens: %w", err)
	}

	stats := &Statistics{
		CropsByCategory: make(map[rotation.Category][]CropCount),
	}

	cropCounts := make(map[rotation.Category]map[string]int)

	for _, garden := range gardens {
		subBeds, err := database.GetSubBeds(ctx, garden.ID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sub-beds for garden %s: %w", garden.Code, err)
		}

		gs := GardenStats{Garden: garden, TotalSubBeds: len(subBeds)}
		for _, sb := range subBeds {
			if sb.IsReserve {
				gs.ReserveSubBeds++
			} else {
				gs.ActiveSubBeds++
			}
		}
		stats.Gardens = append(stats.Gardens, gs)
		stats.TotalBeds += garden.Beds
		stats.TotalSubBeds += gs.TotalSubBeds
		stats.ActiveSubBeds += gs.ActiveSubBeds
		stats.ReserveSubBeds += gs.ReserveSubBeds

		if err := countLatestCycleCrops(ctx, database, garden.ID, cropCounts); err != nil {
			return nil, err
		}
	}

	for category, counts := range cropCounts {
		list := make([]CropCount, 0, len(counts))
		for name, count := range counts {
			list = append(list, CropCount{CropName: name, Count: count})
		}
		// Busiest crops first, alphabetical within equal counts.
		sort.Slice(list, func(a, b int) bool {
			if list[a].Count != list[b].Count {
				return list[a].Count > list[b].Count
			}
			return list[a].CropName < list[b].CropName
		})
		stats.CropsByCategory[category] = list
	}

	logger.Debug("Statistics computed",
		zap.Int("gardens", len(stats.Gardens)),
		zap.Int("total_sub_beds", stats.TotalSubBeds))

	return stats, nil
}

// countLatestCycleCrops tallies effective crop occupancy from a
// garden's most recent cycle into counts. Gardens without cycles
// contribute nothing.
func countLatestCycleCrops(ctx context.Context, database db.Database, gardenID int64, counts map[rotation.Category]map[string]int) error {
	cycles, err := database.GetCycles(ctx, gardenID)
	if err != nil {
		return fmt.Errorf("failed to fetch cycles for garden %d: %w", gardenID, err)
	}
	if len(cycles) == 0 {
		return nil
	}

	plans, err := database.GetCyclePlans(ctx, gardenID, cycles[0])
	if err != nil {
		return fmt.Errorf("failed to fetch plans for garden %d: %w", gardenID, err)
	}

	for _, plan := range plans {
		if plan.IsReserve {
			continue
		}
		name := plan.EffectiveCropName()
		if name == "" {
			continue
		}

		category := rotation.Category(plan.EffectiveCategory())
		if counts[category] == nil {
			counts[category] = make(map[string]int)
		}
		counts[category][name]++
	}

	return nil
}
