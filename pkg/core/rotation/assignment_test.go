package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafCrops() []CropInfo {
	return []CropInfo{
		{ID: 1, Name: "Lettuce", Category: CategoryLeaf, Family: "Asteraceae", Species: "Lactuca sativa"},
		{ID: 2, Name: "Spinach", Category: CategoryLeaf, Family: "Amaranthaceae", Species: "Spinacia oleracea"},
		{ID: 3, Name: "Carrot", Category: CategoryRoot, Family: "Apiaceae", Species: "Daucus carota"},
	}
}

func leafSlots(n int) []PlanSlot {
	slots := make([]PlanSlot, n)
	for i := range slots {
		slots[i] = PlanSlot{SubBedID: int64(i + 1), Category: CategoryLeaf}
	}
	return slots
}

func TestAssignCrops_FiftyFifty(t *testing.T) {
	result := AssignCrops(AssignmentInput{
		Slots: leafSlots(100),
		Crops: leafCrops(),
		Targets: []Target{
			{CropID: 1, Percentage: 50},
			{CropID: 2, Percentage: 50},
		},
	})

	counts := map[int64]int{}
	for _, cropID := range result {
		counts[cropID]++
	}
	assert.Equal(t, 50, counts[1])
	assert.Equal(t, 50, counts[2])
}

func TestAssignCrops_Redistribution(t *testing.T) {
	// Re-running with changed percentages must yield exactly the new
	// split, with no residue from the previous run.
	in := AssignmentInput{
		Slots: leafSlots(100),
		Crops: leafCrops(),
		Targets: []Target{
			{CropID: 1, Percentage: 50},
			{CropID: 2, Percentage: 50},
		},
	}
	first := AssignCrops(in)
	require.Len(t, first, 100)

	in.Targets = []Target{
		{CropID: 1, Percentage: 20},
		{CropID: 2, Percentage: 80},
	}
	second := AssignCrops(in)

	counts := map[int64]int{}
	for _, cropID := range second {
		counts[cropID]++
	}
	assert.Equal(t, 20, counts[1])
	assert.Equal(t, 80, counts[2])
}

func TestAssignCrops_Deterministic(t *testing.T) {
	history := map[int64][]HistoryEntry{
		3: {{CyclesAgo: 1, Category: CategoryLeaf, CropID: 1, Family: "Asteraceae", Species: "Lactuca sativa"}},
		7: {{CyclesAgo: 2, Category: CategoryLeaf, CropID: 2, Family: "Amaranthaceae", Species: "Spinacia oleracea"}},
	}
	in := AssignmentInput{
		Slots: leafSlots(10),
		Crops: leafCrops(),
		Targets: []Target{
			{CropID: 1, Percentage: 60},
			{CropID: 2, Percentage: 40},
		},
		History: history,
	}

	first := AssignCrops(in)
	second := AssignCrops(in)
	assert.Equal(t, first, second)
}

func TestAssignCrops_AvoidsRecentOccupant(t *testing.T) {
	// Two slots, one lettuce to place. Slot 1 held lettuce last cycle,
	// slot 2 held spinach: lettuce must land on slot 2.
	in := AssignmentInput{
		Slots: leafSlots(2),
		Crops: leafCrops(),
		Targets: []Target{
			{CropID: 1, Percentage: 50},
			{CropID: 2, Percentage: 50},
		},
		History: map[int64][]HistoryEntry{
			1: {{CyclesAgo: 1, Category: CategoryLeaf, CropID: 1, Family: "Asteraceae", Species: "Lactuca sativa"}},
			2: {{CyclesAgo: 1, Category: CategoryLeaf, CropID: 2, Family: "Amaranthaceae", Species: "Spinacia oleracea"}},
		},
	}

	result := AssignCrops(in)
	assert.Equal(t, int64(2), result[1], "slot 1 should rotate away from lettuce")
	assert.Equal(t, int64(1), result[2], "slot 2 should rotate away from spinach")
}

func TestAssignCrops_LargerQuotaPicksFirst(t *testing.T) {
	// Slot 5 is the only slot without a lettuce history. Lettuce has
	// the larger quota so it claims its best slots before spinach runs.
	history := map[int64][]HistoryEntry{}
	for id := int64(1); id <= 4; id++ {
		history[id] = []HistoryEntry{
			{CyclesAgo: 1, Category: CategoryLeaf, CropID: 1, Family: "Asteraceae", Species: "Lactuca sativa"},
		}
	}

	result := AssignCrops(AssignmentInput{
		Slots: leafSlots(5),
		Crops: leafCrops(),
		Targets: []Target{
			{CropID: 2, Percentage: 20},
			{CropID: 1, Percentage: 80},
		},
		History: history,
	})

	assert.Equal(t, int64(1), result[5], "the clean slot belongs to the larger quota")

	counts := map[int64]int{}
	for _, cropID := range result {
		counts[cropID]++
	}
	assert.Equal(t, 4, counts[1])
	assert.Equal(t, 1, counts[2])
}

func TestAssignCrops_NoTargetsSkipsCategory(t *testing.T) {
	result := AssignCrops(AssignmentInput{
		Slots: leafSlots(10),
		Crops: leafCrops(),
	})
	assert.Empty(t, result)
}

func TestAssignCrops_QuotaShortfallLeavesSlotsUnassigned(t *testing.T) {
	// 40% of 10 slots resolves to 4; the other 6 keep no crop rather
	// than silently receiving one.
	result := AssignCrops(AssignmentInput{
		Slots:   leafSlots(10),
		Crops:   leafCrops(),
		Targets: []Target{{CropID: 1, Percentage: 40}},
	})

	assert.Len(t, result, 4)
	for _, cropID := range result {
		assert.Equal(t, int64(1), cropID)
	}
}

func TestAssignCrops_TargetsOutsideCategoryIgnored(t *testing.T) {
	// A root-crop target contributes nothing to leaf slots.
	result := AssignCrops(AssignmentInput{
		Slots:   leafSlots(4),
		Crops:   leafCrops(),
		Targets: []Target{{CropID: 3, Percentage: 100}},
	})
	assert.Empty(t, result)
}

func TestAssignCrops_IndependentCategories(t *testing.T) {
	slots := []PlanSlot{
		{SubBedID: 1, Category: CategoryLeaf},
		{SubBedID: 2, Category: CategoryLeaf},
		{SubBedID: 3, Category: CategoryRoot},
		{SubBedID: 4, Category: CategoryRoot},
	}

	result := AssignCrops(AssignmentInput{
		Slots: slots,
		Crops: leafCrops(),
		Targets: []Target{
			{CropID: 1, Percentage: 100},
			{CropID: 3, Percentage: 100},
		},
	})

	assert.Equal(t, int64(1), result[1])
	assert.Equal(t, int64(1), result[2])
	assert.Equal(t, int64(3), result[3])
	assert.Equal(t, int64(3), result[4])
}

func TestAssignCrops_TieBreakBySubBedID(t *testing.T) {
	// All slots score equal; the quota of 2 goes to the lowest IDs.
	result := AssignCrops(AssignmentInput{
		Slots:   leafSlots(5),
		Crops:   leafCrops(),
		Targets: []Target{{CropID: 1, Percentage: 40}},
	})

	require.Len(t, result, 2)
	assert.Contains(t, result, int64(1))
	assert.Contains(t, result, int64(2))
}
