package model

// GroupID uniquely identifies a group
type GroupID string

// GroupSize is the number of members in an enabled group
const GroupSize = 2

// Group is a fixed-size team of players aggregated on the group board
type Group struct {
	ID      GroupID    `json:"id"`
	Name    string     `json:"name"`
	Members []PlayerID `json:"members"`
}

// HasMember returns true if the player belongs to this group
func (g *Group) HasMember(playerID PlayerID) bool {
	for _, m := range g.Members {
		if m == playerID {
			return true
		}
	}
	return false
}

// RemoveMember drops the player from the group if present
func (g *Group) RemoveMember(playerID PlayerID) bool {
	for i, m := range g.Members {
		if m == playerID {
			g.Members = append(g.Members[:i:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}

// NewGroup builds a group, rejecting more than GroupSize or repeated members
func NewGroup(id GroupID, name string, members []PlayerID) (Group, error) {
	if len(members) > GroupSize {
		return Group{}, NewValidationError(RuleGroupSize,
			"group %q has %d members, at most %d allowed", name, len(members), GroupSize)
	}
	seen := make(map[PlayerID]bool, len(members))
	for _, m := range members {
		if seen[m] {
			return Group{}, NewValidationError(RuleGroupDuplicateMember,
				"group %q lists player %q twice", name, m)
		}
		seen[m] = true
	}
	out := make([]PlayerID, len(members))
	copy(out, members)
	return Group{ID: id, Name: name, Members: out}, nil
}
