package rotation

import (
	"math"
	"sort"
)

// Target is one crop's percentage target within a category.
type Target struct {
	CropID     int64
	Percentage float64
}

// Allocation is the resolved integer slot count for one crop.
type Allocation struct {
	CropID int64
	Count  int
}

// ResolveDistribution converts percentage targets into integer slot
// counts using largest-remainder apportionment: each target gets
// floor(pct*total/100), then the shortfall is handed out one slot at a
// time to the targets with the largest fractional remainder. Ties keep
// the input order, so output is stable for identical inputs.
//
// Percentages are normalized against total, never against their own
// sum: targets summing to 100 resolve to counts summing exactly to
// total, while targets summing to less leave part of the total
// uncovered. Each target receives at most one remainder slot, so a
// deliberate under-100 profile is never padded up.
func ResolveDistribution(targets []Target, total int) []Allocation {
	allocations := make([]Allocation, len(targets))
	if total <= 0 {
		for i, t := range targets {
			allocations[i] = Allocation{CropID: t.CropID}
		}
		return allocations
	}

	remainders := make([]float64, len(targets))
	assigned := 0
	for i, t := range targets {
		exact := t.Percentage * float64(total) / 100
		count := int(math.Floor(exact))
		if count < 0 {
			count = 0
			exact = 0
		}
		allocations[i] = Allocation{CropID: t.CropID, Count: count}
		remainders[i] = exact - float64(count)
		assigned += count
	}

	shortfall := total - assigned
	if shortfall <= 0 {
		return allocations
	}

	// Rank targets by fractional remainder, ties broken by input order.
	// Targets with no fractional remainder have no claim on the
	// shortfall: an under-100 profile stays under-resolved.
	var order []int
	for i := range targets {
		if remainders[i] > 1e-9 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	if shortfall > len(order) {
		shortfall = len(order)
	}
	for i := 0; i < shortfall; i++ {
		allocations[order[i]].Count++
	}

	return allocations
}
