package rotation

import "sort"

// AssignmentInput bundles the prefetched data the assignment engine
// works on. The engine is pure: the caller loads everything up front
// and persists the result afterwards, inside one transaction.
type AssignmentInput struct {
	// Slots are the current cycle's plan entries, non-reserve only
	Slots []PlanSlot

	// Crops is the full crop list with botanical metadata
	Crops []CropInfo

	// Targets are the distribution profile rows for (garden, cycle),
	// in their stored order. Targets whose crop falls outside a
	// category are ignored when that category is processed.
	Targets []Target

	// History maps sub-bed ID to its occupancy entries for up to
	// Lookback prior cycles, most recent first.
	History map[int64][]HistoryEntry
}

// AssignCrops picks a crop for every slot it can, per category. Slots
// in categories without any distribution target stay unassigned, as do
// slots left over when the resolved counts fall short of the category's
// slot count. The result maps sub-bed ID to crop ID; absent sub-beds
// keep a nil crop.
//
// The algorithm runs independently per category: percentages resolve to
// integer counts against the category's slot count, crops are processed
// in descending order of resolved count (ties by profile order) so
// larger quotas get first pick, and each crop claims its best-scoring
// slots. Output is deterministic: equal scores fall back to ascending
// sub-bed ID.
func AssignCrops(in AssignmentInput) map[int64]int64 {
	cropByID := make(map[int64]CropInfo, len(in.Crops))
	for _, c := range in.Crops {
		cropByID[c.ID] = c
	}

	result := make(map[int64]int64)

	for _, category := range Categories {
		var slots []PlanSlot
		for _, s := range in.Slots {
			if s.Category == category {
				slots = append(slots, s)
			}
		}
		if len(slots) == 0 {
			continue
		}

		// Targets restricted to this category's crops, profile order kept.
		var targets []Target
		for _, t := range in.Targets {
			if crop, ok := cropByID[t.CropID]; ok && crop.Category == category {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			// Category-only: no crops are assigned here.
			continue
		}

		allocations := ResolveDistribution(targets, len(slots))

		// Largest quotas pick first; ties keep profile order.
		sort.SliceStable(allocations, func(a, b int) bool {
			return allocations[a].Count > allocations[b].Count
		})

		taken := make(map[int64]bool, len(slots))
		for _, alloc := range allocations {
			if alloc.Count == 0 {
				continue
			}
			crop, ok := cropByID[alloc.CropID]
			if !ok {
				continue
			}

			candidates := rankSlots(slots, taken, in.History, crop)
			for i := 0; i < alloc.Count && i < len(candidates); i++ {
				subBedID := candidates[i]
				result[subBedID] = crop.ID
				taken[subBedID] = true
			}
		}
	}

	return result
}

// rankSlots orders the still-unassigned slots for a candidate crop by
// descending score, breaking ties by ascending sub-bed ID.
func rankSlots(slots []PlanSlot, taken map[int64]bool, history map[int64][]HistoryEntry, crop CropInfo) []int64 {
	type scored struct {
		subBedID int64
		score    int
	}

	var ranked []scored
	for _, s := range slots {
		if taken[s.SubBedID] {
			continue
		}
		ranked = append(ranked, scored{
			subBedID: s.SubBedID,
			score:    scoreSlot(history[s.SubBedID], crop),
		})
	}

	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].subBedID < ranked[b].subBedID
	})

	ids := make([]int64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.subBedID
	}
	return ids
}
