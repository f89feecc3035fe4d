package model

import "time"

// WinningGroupCount is the number of groups marked as winning
const WinningGroupCount = 2

// PlayerStanding is one row of the player leaderboard
type PlayerStanding struct {
	Rank     int // 1-indexed position
	PlayerID PlayerID
	Name     string
	Avatar   string
	Score    float64
	InTopK   bool // Row sits above the top-K divider
}

// PlayerBoard is the ordered player leaderboard
type PlayerBoard struct {
	Entries []PlayerStanding
	TopK    int
}

// GroupMemberStanding is one member's contribution to a group score
type GroupMemberStanding struct {
	PlayerID PlayerID
	Name     string
	Score    float64
}

// GroupStanding is one row of the group leaderboard
type GroupStanding struct {
	Rank    int
	GroupID GroupID
	Name    string
	Members []GroupMemberStanding
	Score   float64
	Winning bool
}

// GroupBoard is the ordered group leaderboard
type GroupBoard struct {
	Enabled bool
	Entries []GroupStanding
}

// SeatResult is one seat of a round with names resolved for display
type SeatResult struct {
	Seat      Seat
	PlayerID  PlayerID
	Name      string
	Known     bool // false when the player has since been removed
	Breakdown Breakdown
}

// RoundView is a round prepared for history display
type RoundView struct {
	Number    int // 1-indexed
	ID        RoundID
	Timestamp time.Time
	Seats     [SeatCount]SeatResult
}

// ProgressPoint is a player's cumulative score after a round they played
type ProgressPoint struct {
	RoundNumber int
	RoundID     RoundID
	Delta       float64
	Total       float64
}

// PlayerDetail combines a player's record with their progression
type PlayerDetail struct {
	Player       Player
	Score        float64
	Rank         int
	RoundsPlayed int
	Progression  []ProgressPoint
}

// ScoreSeries is a player's cumulative score after every round, in order
type ScoreSeries struct {
	PlayerID PlayerID
	Name     string
	Totals   []float64 // Totals[i] is the score after round i+1
}
