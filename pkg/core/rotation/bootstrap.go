package rotation

import "math/rand"

// BootstrapBed is one physical bed's active sub-beds in position order.
type BootstrapBed struct {
	Number    int
	SubBedIDs []int64
}

// BootstrapInput bundles the data for first-time allocation, before any
// cycle history exists.
type BootstrapInput struct {
	// Beds in physical order, active sub-beds only
	Beds []BootstrapBed

	// Sequence is the configured rotation sequence
	Sequence []Category

	// Crops is the full crop list; crops outside the sequence's
	// categories are never used
	Crops []CropInfo

	// Defaults maps crop ID to its default target percentage. May be
	// empty, in which case each category splits evenly across its crops.
	Defaults map[int64]float64
}

// InitialAllocate seeds categories and crops for a garden with no prior
// cycles. It works bed-first: each bed's opening sub-bed takes the
// bed's primary category, which advances one step through the sequence
// per bed, and later sub-beds spill into the next category once the
// primary's quota runs out. Crops rotate within a category, and a new
// bed avoids opening with the crop that opened the previous bed unless
// nothing else has quota left.
//
// The starting offset into the sequence comes from rng: the one
// intentional source of non-determinism in the engine. Pass a seeded
// rand.Rand to make the result reproducible.
func InitialAllocate(in BootstrapInput, rng *rand.Rand) map[int64]SlotAssignment {
	result := make(map[int64]SlotAssignment)
	if len(in.Beds) == 0 || len(in.Sequence) == 0 {
		return result
	}

	total := 0
	for _, bed := range in.Beds {
		total += len(bed.SubBedIDs)
	}
	if total == 0 {
		return result
	}

	catQuota := categoryQuotas(total, len(in.Sequence))
	cropQuota, cropOrder := cropQuotas(in, catQuota)

	// Rotating crop pointer per category.
	cropCursor := make(map[Category]int, len(in.Sequence))

	// Primary category index, advanced one step per bed. Starting
	// offset is randomized so repeated setups don't always begin the
	// same way.
	primary := rng.Intn(len(in.Sequence)) - 1

	var prevStarter int64

	for _, bed := range in.Beds {
		next, ok := nextWithQuota(catQuota, primary+1, len(in.Sequence))
		if !ok {
			// Every category quota exhausted.
			break
		}
		primary = next

		fill := primary
		for slotIdx, subBedID := range bed.SubBedIDs {
			if catQuota[fill] == 0 {
				fill, ok = nextWithQuota(catQuota, fill+1, len(in.Sequence))
				if !ok {
					break
				}
			}

			category := in.Sequence[fill]
			cropID := pickCrop(category, cropOrder[category], cropQuota, cropCursor, slotIdx == 0, prevStarter)

			result[subBedID] = SlotAssignment{Category: category, CropID: cropID}
			catQuota[fill]--
			if slotIdx == 0 {
				prevStarter = cropID
			}
		}
	}

	return result
}

// categoryQuotas splits total evenly across n categories, one extra
// slot each to the earliest sequence entries for the remainder.
func categoryQuotas(total, n int) []int {
	quotas := make([]int, n)
	base := total / n
	rem := total % n
	for i := range quotas {
		quotas[i] = base
		if i < rem {
			quotas[i]++
		}
	}
	return quotas
}

// cropQuotas resolves each category's quota into per-crop quotas. With
// default percentages present the split uses largest-remainder
// apportionment; without them crops share evenly, remainder to the
// earliest crops.
func cropQuotas(in BootstrapInput, catQuota []int) (map[int64]int, map[Category][]CropInfo) {
	byCategory := make(map[Category][]CropInfo)
	for _, c := range in.Crops {
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}

	quotas := make(map[int64]int)
	for i, category := range in.Sequence {
		crops := byCategory[category]
		if len(crops) == 0 {
			continue
		}

		var targets []Target
		for _, c := range crops {
			if pct := in.Defaults[c.ID]; pct > 0 {
				targets = append(targets, Target{CropID: c.ID, Percentage: pct})
			}
		}

		if len(targets) > 0 {
			for _, alloc := range ResolveDistribution(targets, catQuota[i]) {
				quotas[alloc.CropID] = alloc.Count
			}
			continue
		}

		// Equal split, remainder to the earliest crops.
		base := catQuota[i] / len(crops)
		rem := catQuota[i] % len(crops)
		for j, c := range crops {
			quotas[c.ID] = base
			if j < rem {
				quotas[c.ID]++
			}
		}
	}
	return quotas, byCategory
}

// nextWithQuota scans forward (wrapping) from index start for the first
// category with remaining quota.
func nextWithQuota(catQuota []int, start, n int) (int, bool) {
	for i := 0; i < n; i++ {
		idx := ((start + i) % n + n) % n
		if catQuota[idx] > 0 {
			return idx, true
		}
	}
	return 0, false
}

// pickCrop selects the next crop for a sub-bed within category. Crops
// rotate via a per-category cursor. When opening a new bed the crop
// that opened the previous bed is skipped on the first pass and only
// used if no other crop has quota — a preference, never a rejection.
func pickCrop(category Category, crops []CropInfo, quotas map[int64]int, cursor map[Category]int, isStarter bool, prevStarter int64) int64 {
	if len(crops) == 0 {
		return 0
	}

	pick := func(avoid int64) int64 {
		start := cursor[category]
		for i := 0; i < len(crops); i++ {
			idx := (start + i) % len(crops)
			crop := crops[idx]
			if quotas[crop.ID] <= 0 || crop.ID == avoid {
				continue
			}
			quotas[crop.ID]--
			cursor[category] = idx + 1
			return crop.ID
		}
		return 0
	}

	if isStarter && prevStarter != 0 {
		if id := pick(prevStarter); id != 0 {
			return id
		}
	}
	return pick(0)
}
