package scoring

import (
	"sort"

	"github.com/mcoot/tilescore/internal/model"
)

// Game rule constants for raw score normalization
const (
	// ReferencePoints is the raw score that normalizes to a base of zero
	ReferencePoints = 30000
	// PointsPerUnit is the raw score step worth one base point
	PointsPerUnit = 1000
)

// Base normalizes a raw score around the reference point
func Base(raw int) float64 {
	return float64(raw-ReferencePoints) / PointsPerUnit
}

// RankOrder returns seat indexes ordered from first to last place
// Ranking is by raw score descending; equal scores keep seat order.
func RankOrder(entries [model.SeatCount]model.SeatEntry) [model.SeatCount]int {
	order := [model.SeatCount]int{0, 1, 2, 3}
	sort.SliceStable(order[:], func(i, j int) bool {
		return entries[order[i]].RawScore > entries[order[j]].RawScore
	})
	return order
}

// ComputeRoundDeltas scores one round
// The result is in the same seat order as entries. Callers must validate
// that player IDs are distinct before calling.
func ComputeRoundDeltas(entries [model.SeatCount]model.SeatEntry, table model.RankBonusTable) [model.SeatCount]model.Breakdown {
	var result [model.SeatCount]model.Breakdown

	for rank, seat := range RankOrder(entries) {
		entry := entries[seat]
		base := Base(entry.RawScore)
		bonus := table[rank]
		result[seat] = model.Breakdown{
			PlayerID: entry.PlayerID,
			Raw:      entry.RawScore,
			Base:     base,
			Bonus:    bonus,
			Delta:    base + bonus,
			Rank:     rank,
		}
	}

	return result
}
