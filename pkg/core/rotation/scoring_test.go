package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	tomato = CropInfo{ID: 1, Name: "Tomato", Category: CategoryFruit, Family: "Solanaceae", Species: "Solanum lycopersicum"}
	chili  = CropInfo{ID: 2, Name: "Chili", Category: CategoryFruit, Family: "Solanaceae", Species: "Capsicum annuum"}
	okra   = CropInfo{ID: 3, Name: "Okra", Category: CategoryFruit, Family: "Malvaceae", Species: "Abelmoschus esculentus"}
)

func historyFor(crop CropInfo, cyclesAgo int) HistoryEntry {
	return HistoryEntry{
		CyclesAgo: cyclesAgo,
		Category:  crop.Category,
		CropID:    crop.ID,
		Family:    crop.Family,
		Species:   crop.Species,
	}
}

func TestScoreSlot_SameCropPenalties(t *testing.T) {
	for _, tc := range []struct {
		cyclesAgo int
		want      int
	}{
		{1, -50}, {2, -30}, {3, -15}, {4, -5}, {5, -1},
	} {
		score := scoreSlot([]HistoryEntry{historyFor(tomato, tc.cyclesAgo)}, tomato)
		assert.Equal(t, tc.want, score, "cycles ago %d", tc.cyclesAgo)
	}
}

func TestScoreSlot_SameSpeciesPenalties(t *testing.T) {
	// Same species group, different crop ID.
	cherry := CropInfo{ID: 9, Name: "Cherry Tomato", Category: CategoryFruit, Family: "Solanaceae", Species: "Solanum lycopersicum"}

	for _, tc := range []struct {
		cyclesAgo int
		want      int
	}{
		{1, -35}, {2, -20}, {3, -10}, {4, -3}, {5, 0},
	} {
		score := scoreSlot([]HistoryEntry{historyFor(tomato, tc.cyclesAgo)}, cherry)
		assert.Equal(t, tc.want, score, "cycles ago %d", tc.cyclesAgo)
	}
}

func TestScoreSlot_SameFamilyPenalties(t *testing.T) {
	// Tomato and chili share Solanaceae but not a species group.
	for _, tc := range []struct {
		cyclesAgo int
		want      int
	}{
		{1, -20}, {2, -10}, {3, -5}, {4, 0}, {5, 0},
	} {
		score := scoreSlot([]HistoryEntry{historyFor(tomato, tc.cyclesAgo)}, chili)
		assert.Equal(t, tc.want, score, "cycles ago %d", tc.cyclesAgo)
	}
}

func TestScoreSlot_DiversityBonus(t *testing.T) {
	// Okra shares neither family nor species with tomato.
	score := scoreSlot([]HistoryEntry{historyFor(tomato, 1)}, okra)
	assert.Equal(t, 2, score)
}

func TestScoreSlot_NoHistoryIsNeutral(t *testing.T) {
	assert.Equal(t, 0, scoreSlot(nil, tomato))
}

func TestScoreSlot_OtherCategoryIgnored(t *testing.T) {
	carrot := CropInfo{ID: 4, Name: "Carrot", Category: CategoryRoot, Family: "Apiaceae"}
	score := scoreSlot([]HistoryEntry{historyFor(carrot, 1)}, tomato)
	assert.Equal(t, 0, score)
}

func TestScoreSlot_EmptyMetadataNeverMatches(t *testing.T) {
	// Both the candidate and the historical crop lack family and
	// species data: absence is no constraint, so the entry counts as
	// diverse rather than as a match.
	bare := CropInfo{ID: 5, Name: "Mystery", Category: CategoryFruit}
	other := CropInfo{ID: 6, Name: "Unknown", Category: CategoryFruit}

	score := scoreSlot([]HistoryEntry{historyFor(bare, 1)}, other)
	assert.Equal(t, 2, score)
}

func TestScoreSlot_BeyondLookbackIgnored(t *testing.T) {
	score := scoreSlot([]HistoryEntry{historyFor(tomato, 6)}, tomato)
	assert.Equal(t, 0, score)
}

func TestScoreSlot_AccumulatesAcrossCycles(t *testing.T) {
	history := []HistoryEntry{
		historyFor(tomato, 1), // same crop: -50
		historyFor(chili, 2),  // same family: -10
		historyFor(okra, 3),   // diverse: +2
	}
	assert.Equal(t, -58, scoreSlot(history, tomato))
}

func TestScoreSlot_SelfRepeatScoresBelowFreshCrop(t *testing.T) {
	// A sub-bed whose most recent occupant was tomato must prefer any
	// crop sharing neither family nor species over tomato itself.
	history := []HistoryEntry{historyFor(tomato, 1)}

	repeat := scoreSlot(history, tomato)
	fresh := scoreSlot(history, okra)
	assert.Less(t, repeat, fresh)
}
