package model

// Tournament is the aggregate holding all tournament state
type Tournament struct {
	Roster          []Player
	Ledger          Ledger
	Rounds          []Round
	RankBonus       RankBonusTable
	TopK            int
	GroupingEnabled bool
	Groups          []Group
}

// NewTournament returns an empty tournament with default settings
func NewTournament() *Tournament {
	return &Tournament{
		Roster:          []Player{},
		Ledger:          make(Ledger),
		Rounds:          []Round{},
		RankBonus:       DefaultRankBonusTable(),
		TopK:            DefaultTopK,
		GroupingEnabled: false,
		Groups:          []Group{},
	}
}

// GetPlayer returns the roster entry for the given ID, or nil if not found
func (t *Tournament) GetPlayer(id PlayerID) *Player {
	for i := range t.Roster {
		if t.Roster[i].ID == id {
			return &t.Roster[i]
		}
	}
	return nil
}

// HasPlayer returns true if the ID is in the roster
func (t *Tournament) HasPlayer(id PlayerID) bool {
	return t.GetPlayer(id) != nil
}

// PlayersByID indexes the roster by player ID
func (t *Tournament) PlayersByID() map[PlayerID]Player {
	out := make(map[PlayerID]Player, len(t.Roster))
	for _, p := range t.Roster {
		out[p.ID] = p
	}
	return out
}

// GroupingLocked returns true once any round has been committed
func (t *Tournament) GroupingLocked() bool {
	return len(t.Rounds) > 0
}

// Clone returns a deep copy of the tournament
func (t *Tournament) Clone() *Tournament {
	out := &Tournament{
		Roster:          make([]Player, len(t.Roster)),
		Ledger:          t.Ledger.Clone(),
		Rounds:          make([]Round, len(t.Rounds)),
		RankBonus:       t.RankBonus,
		TopK:            t.TopK,
		GroupingEnabled: t.GroupingEnabled,
		Groups:          make([]Group, len(t.Groups)),
	}
	copy(out.Roster, t.Roster)
	copy(out.Rounds, t.Rounds) // Rounds hold only value arrays
	for i, g := range t.Groups {
		members := make([]PlayerID, len(g.Members))
		copy(members, g.Members)
		out.Groups[i] = Group{ID: g.ID, Name: g.Name, Members: members}
	}
	return out
}
