package response

import (
	"time"

	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/services/auth"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

// Player represents a player in API responses
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Note   string `json:"note,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:     string(p.ID),
		Name:   p.Name,
		Avatar: p.Avatar,
		Note:   p.Note,
	}
}

// PlayersFromModel converts a roster
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i := range players {
		out[i] = PlayerFromModel(&players[i])
	}
	return out
}

// AuthResponse is the response for organizer login
type AuthResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Group represents a configured group
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// GroupsFromModel converts model groups
func GroupsFromModel(groups []model.Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		members := make([]string, len(g.Members))
		for j, m := range g.Members {
			members[j] = string(m)
		}
		out[i] = Group{ID: string(g.ID), Name: g.Name, Members: members}
	}
	return out
}

// Tournament is the tournament summary response
type Tournament struct {
	Players         int       `json:"players"`
	Rounds          int       `json:"rounds"`
	RankBonus       []float64 `json:"rank_bonus"`
	TopK            int       `json:"top_k"`
	GroupingEnabled bool      `json:"grouping_enabled"`
	GroupingLocked  bool      `json:"grouping_locked"`
	Groups          []Group   `json:"groups"`
	EnforceTotal    bool      `json:"enforce_total"`
}

// TournamentFromSummary builds the summary response
func TournamentFromSummary(s tournament.Summary, groups []model.Group) Tournament {
	return Tournament{
		Players:         s.Players,
		Rounds:          s.Rounds,
		RankBonus:       s.RankBonus.Slice(),
		TopK:            s.TopK,
		GroupingEnabled: s.GroupingEnabled,
		GroupingLocked:  s.GroupingLocked,
		Groups:          GroupsFromModel(groups),
		EnforceTotal:    s.EnforceTotal,
	}
}

// Breakdown is the scored result for one seat
type Breakdown struct {
	Seat     string  `json:"seat"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name,omitempty"`
	Raw      int     `json:"raw"`
	Base     float64 `json:"base"`
	Bonus    float64 `json:"bonus"`
	Delta    float64 `json:"delta"`
	Place    int     `json:"place"` // 1 is first
}

// Round is a committed round
type Round struct {
	Number    int         `json:"number,omitempty"`
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Seats     []Breakdown `json:"seats"`
}

// RoundFromView converts one round with names resolved
func RoundFromView(v model.RoundView) Round {
	seats := make([]Breakdown, model.SeatCount)
	for i, s := range v.Seats {
		seats[i] = breakdownFromModel(s.Seat, s.Breakdown, s.Name)
	}
	return Round{Number: v.Number, ID: string(v.ID), Timestamp: v.Timestamp, Seats: seats}
}

// RoundsFromViews converts round history
func RoundsFromViews(views []model.RoundView) []Round {
	out := make([]Round, len(views))
	for i, v := range views {
		out[i] = RoundFromView(v)
	}
	return out
}

func breakdownFromModel(seat model.Seat, b model.Breakdown, name string) Breakdown {
	return Breakdown{
		Seat:     seat.String(),
		PlayerID: string(b.PlayerID),
		Name:     name,
		Raw:      b.Raw,
		Base:     b.Base,
		Bonus:    b.Bonus,
		Delta:    b.Delta,
		Place:    b.Rank + 1,
	}
}

// PlayerStanding is one row of the player leaderboard
type PlayerStanding struct {
	Rank     int     `json:"rank"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar,omitempty"`
	Score    float64 `json:"score"`
	InTopK   bool    `json:"in_top_k"`
}

// PlayerBoard is the player leaderboard response
type PlayerBoard struct {
	TopK    int              `json:"top_k"`
	Entries []PlayerStanding `json:"entries"`
}

// PlayerBoardFromModel converts a player board
func PlayerBoardFromModel(b model.PlayerBoard) PlayerBoard {
	entries := make([]PlayerStanding, len(b.Entries))
	for i, e := range b.Entries {
		entries[i] = PlayerStanding{
			Rank:     e.Rank,
			PlayerID: string(e.PlayerID),
			Name:     e.Name,
			Avatar:   e.Avatar,
			Score:    e.Score,
			InTopK:   e.InTopK,
		}
	}
	return PlayerBoard{TopK: b.TopK, Entries: entries}
}

// GroupMember is one member's contribution to a group score
type GroupMember struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
}

// GroupStanding is one row of the group leaderboard
type GroupStanding struct {
	Rank    int           `json:"rank"`
	GroupID string        `json:"group_id"`
	Name    string        `json:"name"`
	Members []GroupMember `json:"members"`
	Score   float64       `json:"score"`
	Winning bool          `json:"winning"`
}

// GroupBoard is the group leaderboard response
type GroupBoard struct {
	Enabled bool            `json:"enabled"`
	Entries []GroupStanding `json:"entries"`
}

// GroupBoardFromModel converts a group board
func GroupBoardFromModel(b model.GroupBoard) GroupBoard {
	entries := make([]GroupStanding, len(b.Entries))
	for i, e := range b.Entries {
		members := make([]GroupMember, len(e.Members))
		for j, m := range e.Members {
			members[j] = GroupMember{PlayerID: string(m.PlayerID), Name: m.Name, Score: m.Score}
		}
		entries[i] = GroupStanding{
			Rank:    e.Rank,
			GroupID: string(e.GroupID),
			Name:    e.Name,
			Members: members,
			Score:   e.Score,
			Winning: e.Winning,
		}
	}
	return GroupBoard{Enabled: b.Enabled, Entries: entries}
}

// ProgressPoint is a player's total after a round they played
type ProgressPoint struct {
	Round   int     `json:"round"`
	RoundID string  `json:"round_id"`
	Delta   float64 `json:"delta"`
	Total   float64 `json:"total"`
}

// PlayerDetail is the player detail response
type PlayerDetail struct {
	Player       Player          `json:"player"`
	Score        float64         `json:"score"`
	Rank         int             `json:"rank"`
	RoundsPlayed int             `json:"rounds_played"`
	Progression  []ProgressPoint `json:"progression"`
}

// PlayerDetailFromModel converts a player detail
func PlayerDetailFromModel(d *model.PlayerDetail) PlayerDetail {
	points := make([]ProgressPoint, len(d.Progression))
	for i, p := range d.Progression {
		points[i] = ProgressPoint{Round: p.RoundNumber, RoundID: string(p.RoundID), Delta: p.Delta, Total: p.Total}
	}
	return PlayerDetail{
		Player:       PlayerFromModel(&d.Player),
		Score:        d.Score,
		Rank:         d.Rank,
		RoundsPlayed: d.RoundsPlayed,
		Progression:  points,
	}
}
