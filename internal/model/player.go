package model

// PlayerID uniquely identifies a player within a tournament
type PlayerID string

// UnknownPlayerName is displayed for references to removed players
const UnknownPlayerName = "unknown player"

// Player represents a registered tournament participant
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar,omitempty"` // Opaque image reference
	Note   string   `json:"note,omitempty"`
}

// PlayerPatch holds optional field updates for a player
// nil fields are left unchanged
type PlayerPatch struct {
	Name   *string
	Avatar *string
	Note   *string
}

// IsEmpty returns true if the patch changes nothing
func (p PlayerPatch) IsEmpty() bool {
	return p.Name == nil && p.Avatar == nil && p.Note == nil
}
