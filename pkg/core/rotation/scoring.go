package rotation

// Lookback is the number of prior cycles consulted when scoring a
// sub-bed for a candidate crop.
const Lookback = 5

// Penalty tables indexed by cycles-ago minus one. A repeat one cycle
// ago is penalized hardest; beyond Lookback the history carries no
// weight at all.
var (
	sameCropPenalty    = [Lookback]int{-50, -30, -15, -5, -1}
	sameSpeciesPenalty = [Lookback]int{-35, -20, -10, -3, 0}
	sameFamilyPenalty  = [Lookback]int{-20, -10, -5, 0, 0}
)

// diversityBonus rewards a history entry that shares neither crop,
// species nor family with the candidate.
const diversityBonus = 2

// scoreSlot computes the suitability of a sub-bed for the candidate
// crop from the sub-bed's occupancy history. Only entries in the same
// category as the candidate count; a sub-bed with no matching history
// is neutral (score 0). Higher is better.
func scoreSlot(history []HistoryEntry, candidate CropInfo) int {
	score := 0
	for _, entry := range history {
		if entry.Category != candidate.Category {
			continue
		}
		if entry.CyclesAgo < 1 || entry.CyclesAgo > Lookback {
			continue
		}
		idx := entry.CyclesAgo - 1

		switch {
		case entry.CropID == candidate.ID:
			score += sameCropPenalty[idx]
		case candidate.Species != "" && entry.Species == candidate.Species:
			score += sameSpeciesPenalty[idx]
		case candidate.Family != "" && entry.Family == candidate.Family:
			score += sameFamilyPenalty[idx]
		default:
			score += diversityBonus
		}
	}
	return score
}
