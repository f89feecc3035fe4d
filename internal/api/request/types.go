package request

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/mcoot/tilescore/internal/model"
)

// LoginRequest is the request body for organizer login
type LoginRequest struct {
	Password string `json:"password"`
}

// AddPlayerRequest is the request body for registering a player
type AddPlayerRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// UpdatePlayerRequest is the request body for patching a player
// Omitted fields are left unchanged.
type UpdatePlayerRequest struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// ToPatch converts the request into a model.PlayerPatch
func (r UpdatePlayerRequest) ToPatch() model.PlayerPatch {
	return model.PlayerPatch{Name: r.Name, Avatar: r.Avatar, Note: r.Note}
}

// RankBonusRequest is the request body for replacing the rank bonus table
type RankBonusRequest struct {
	Values []float64 `json:"values"`
}

// TopKRequest is the request body for moving the leaderboard divider
type TopKRequest struct {
	TopK int `json:"top_k"`
}

// GroupRequest describes one group in a grouping update
type GroupRequest struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// GroupingRequest is the request body for configuring grouping
type GroupingRequest struct {
	Enabled bool           `json:"enabled"`
	Groups  []GroupRequest `json:"groups"`
}

// ToGroups converts the request groups into model groups
func (r GroupingRequest) ToGroups() []model.Group {
	groups := make([]model.Group, len(r.Groups))
	for i, g := range r.Groups {
		members := make([]model.PlayerID, len(g.Members))
		for j, m := range g.Members {
			members[j] = model.PlayerID(m)
		}
		groups[i] = model.Group{ID: model.GroupID(g.ID), Name: g.Name, Members: members}
	}
	return groups
}

// SeatRequest is one seat of a submitted round.
// RawScore is kept undecoded so a missing, null, string or fractional
// score is rejected with a rule instead of a decode error or a silent 0.
type SeatRequest struct {
	PlayerID string          `json:"player_id"`
	RawScore json.RawMessage `json:"raw_score,omitempty"`
}

// NewSeatRequest builds a seat carrying a numeric raw score
func NewSeatRequest(playerID string, rawScore float64) SeatRequest {
	return SeatRequest{
		PlayerID: playerID,
		RawScore: json.RawMessage(strconv.FormatFloat(rawScore, 'f', -1, 64)),
	}
}

// SubmitRoundRequest is the request body for submitting a round, in seat order
type SubmitRoundRequest struct {
	Seats []SeatRequest `json:"seats"`
}

// ToEntries converts seats to entries, rejecting raw scores that are
// missing, non-numeric or not whole numbers
func (r SubmitRoundRequest) ToEntries() ([]model.SeatEntry, error) {
	entries := make([]model.SeatEntry, len(r.Seats))
	for i, s := range r.Seats {
		raw, err := s.rawScore(i + 1)
		if err != nil {
			return nil, err
		}
		entries[i] = model.SeatEntry{PlayerID: model.PlayerID(s.PlayerID), RawScore: raw}
	}
	return entries, nil
}

func (s SeatRequest) rawScore(seat int) (int, error) {
	text := bytes.TrimSpace(s.RawScore)
	if len(text) == 0 || bytes.Equal(text, []byte("null")) {
		return 0, model.NewValidationError(model.RuleRawScoreMissing,
			"raw score for seat %d is missing", seat)
	}
	var raw float64
	if err := json.Unmarshal(text, &raw); err != nil {
		return 0, model.NewValidationError(model.RuleRawScoreNotNumber,
			"raw score for seat %d must be a number", seat)
	}
	if raw != math.Trunc(raw) || raw > math.MaxInt32 || raw < math.MinInt32 {
		return 0, model.NewValidationError(model.RuleRawScoreNotInteger,
			"raw score for seat %d must be a whole number", seat)
	}
	return int(raw), nil
}
