package pages

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/web/templates/layout"
)

// RecentRoundCount is the number of rounds shown on the leaderboard page
const RecentRoundCount = 10

var seats = [model.SeatCount]model.Seat{model.SeatEast, model.SeatSouth, model.SeatWest, model.SeatNorth}

// newestFirst returns up to RecentRoundCount rounds, newest first
func newestFirst(rounds []model.RoundView) []model.RoundView {
	n := min(len(rounds), RecentRoundCount)
	out := make([]model.RoundView, n)
	for i := range out {
		out[i] = rounds[len(rounds)-1-i]
	}
	return out
}

// standingClass marks rows inside the top K; the divider sits under the
// last of them unless it is also the last row
func standingClass(board model.PlayerBoard, i int) string {
	e := board.Entries[i]
	class := "standing"
	if e.InTopK {
		class += " top-k"
		if i == board.TopK-1 && i < len(board.Entries)-1 {
			class += " divider"
		}
	}
	return class
}

func playerURL(id model.PlayerID) templ.SafeURL {
	return templ.URL("/players/" + string(id))
}

func memberList(members []model.GroupMemberStanding) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.Name + " (" + layout.Score(m.Score) + ")"
	}
	return strings.Join(parts, ", ")
}
