package model

import "math"

// RankCount is the number of finishing ranks in a round
const RankCount = 4

// DefaultTopK is the default leaderboard divider position
const DefaultTopK = 4

// RankBonusTable holds the bonus awarded per finishing rank
// Index 0 is first place. Values are not required to be ordered.
type RankBonusTable [RankCount]float64

// DefaultRankBonusTable returns the default bonus table
func DefaultRankBonusTable() RankBonusTable {
	return RankBonusTable{20, 10, -10, -20}
}

// NewRankBonusTable validates values and builds a RankBonusTable
func NewRankBonusTable(values []float64) (RankBonusTable, error) {
	var table RankBonusTable
	if len(values) != RankCount {
		return table, NewValidationError(RuleRankBonusLength,
			"rank bonus table needs exactly %d entries, got %d", RankCount, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return table, NewValidationError(RuleRankBonusNotFinite,
				"rank bonus for rank %d is not a finite number", i+1)
		}
		table[i] = v
	}
	return table, nil
}

// Sum returns the total of all bonuses
func (t RankBonusTable) Sum() float64 {
	var sum float64
	for _, v := range t {
		sum += v
	}
	return sum
}

// Slice returns the bonuses as a slice
func (t RankBonusTable) Slice() []float64 {
	out := make([]float64, RankCount)
	copy(out, t[:])
	return out
}
