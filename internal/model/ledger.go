package model

// Ledger maps each player to their cumulative score
type Ledger map[PlayerID]float64

// Score returns the player's cumulative score, 0 if absent
func (l Ledger) Score(playerID PlayerID) float64 {
	return l[playerID]
}

// Add applies a delta to the player's total, creating the entry if absent
func (l Ledger) Add(playerID PlayerID, delta float64) {
	l[playerID] += delta
}

// Clone returns an independent copy of the ledger
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
