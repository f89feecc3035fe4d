package model

import "time"

// RoundID uniquely identifies a committed round
type RoundID string

// SeatCount is the number of seats at a table
const SeatCount = 4

// Seat is a table position; seat order breaks raw score ties
type Seat int

const (
	SeatEast Seat = iota
	SeatSouth
	SeatWest
	SeatNorth
)

// String returns the compass name of the seat
func (s Seat) String() string {
	switch s {
	case SeatEast:
		return "East"
	case SeatSouth:
		return "South"
	case SeatWest:
		return "West"
	case SeatNorth:
		return "North"
	default:
		return "Unknown"
	}
}

// SeatEntry is one seat's raw input for a round
type SeatEntry struct {
	PlayerID PlayerID `json:"player_id"`
	RawScore int      `json:"raw_score"`
}

// Breakdown is the scored result for one seat
type Breakdown struct {
	PlayerID PlayerID `json:"player_id"`
	Raw      int      `json:"raw"`
	Base     float64  `json:"base"`
	Bonus    float64  `json:"bonus"`
	Delta    float64  `json:"delta"`
	Rank     int      `json:"rank"` // 0 is first place
}

// Round is an immutable record of one committed table result
// All arrays are in seat order (East, South, West, North).
type Round struct {
	ID        RoundID              `json:"id"`
	Timestamp time.Time            `json:"timestamp"`
	Seats     [SeatCount]PlayerID  `json:"seats"`
	RawScores [SeatCount]int       `json:"raw_scores"`
	Breakdown [SeatCount]Breakdown `json:"breakdown"`
}

// DeltaFor returns the delta a player received in this round
func (r *Round) DeltaFor(playerID PlayerID) (float64, bool) {
	for _, b := range r.Breakdown {
		if b.PlayerID == playerID {
			return b.Delta, true
		}
	}
	return 0, false
}

// Includes returns true if the player was seated in this round
func (r *Round) Includes(playerID PlayerID) bool {
	_, ok := r.DeltaFor(playerID)
	return ok
}
