package leaderboard

import (
	"sort"

	"github.com/mcoot/tilescore/internal/model"
)

// BuildPlayerBoard orders the roster by cumulative score, highest first.
// Equal scores keep roster order. topK only marks the divider.
func BuildPlayerBoard(roster []model.Player, ledger model.Ledger, topK int) model.PlayerBoard {
	entries := make([]model.PlayerStanding, len(roster))
	for i, p := range roster {
		entries[i] = model.PlayerStanding{
			PlayerID: p.ID,
			Name:     p.Name,
			Avatar:   p.Avatar,
			Score:    ledger.Score(p.ID),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].InTopK = i < topK
	}

	return model.PlayerBoard{Entries: entries, TopK: topK}
}

// BuildGroupBoard orders groups by the sum of their members' scores.
// Equal scores keep configuration order; the first WinningGroupCount
// entries are marked winning.
func BuildGroupBoard(groups []model.Group, playersByID map[model.PlayerID]model.Player, ledger model.Ledger) model.GroupBoard {
	entries := make([]model.GroupStanding, len(groups))
	for i, g := range groups {
		members := make([]model.GroupMemberStanding, len(g.Members))
		var total float64
		for j, id := range g.Members {
			member := model.GroupMemberStanding{PlayerID: id, Name: model.UnknownPlayerName}
			if p, ok := playersByID[id]; ok {
				member.Name = p.Name
				member.Score = ledger.Score(id)
			}
			members[j] = member
			total += member.Score
		}
		entries[i] = model.GroupStanding{
			GroupID: g.ID,
			Name:    g.Name,
			Members: members,
			Score:   total,
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Winning = i < model.WinningGroupCount
	}

	return model.GroupBoard{Enabled: true, Entries: entries}
}

// BuildRoundHistory resolves player names for every round, oldest first
func BuildRoundHistory(rounds []model.Round, playersByID map[model.PlayerID]model.Player) []model.RoundView {
	views := make([]model.RoundView, len(rounds))
	for i, r := range rounds {
		views[i] = BuildRoundView(r, i+1, playersByID)
	}
	return views
}

// BuildRoundView resolves player names for one round at its 1-indexed position
func BuildRoundView(r model.Round, number int, playersByID map[model.PlayerID]model.Player) model.RoundView {
	view := model.RoundView{
		Number:    number,
		ID:        r.ID,
		Timestamp: r.Timestamp,
	}
	for seat, id := range r.Seats {
		result := model.SeatResult{
			Seat:      model.Seat(seat),
			PlayerID:  id,
			Name:      model.UnknownPlayerName,
			Breakdown: r.Breakdown[seat],
		}
		if p, ok := playersByID[id]; ok {
			result.Name = p.Name
			result.Known = true
		}
		view.Seats[seat] = result
	}
	return view
}

// BuildProgression lists a player's cumulative score after each round they played
func BuildProgression(rounds []model.Round, playerID model.PlayerID) []model.ProgressPoint {
	points := []model.ProgressPoint{}
	var total float64
	for i, r := range rounds {
		delta, ok := r.DeltaFor(playerID)
		if !ok {
			continue
		}
		total += delta
		points = append(points, model.ProgressPoint{
			RoundNumber: i + 1,
			RoundID:     r.ID,
			Delta:       delta,
			Total:       total,
		})
	}
	return points
}

// BuildPlayerDetail combines a player's standing with their progression
func BuildPlayerDetail(t *model.Tournament, playerID model.PlayerID) (*model.PlayerDetail, error) {
	player := t.GetPlayer(playerID)
	if player == nil {
		return nil, model.NewNotFoundError(model.KindPlayer, string(playerID))
	}

	rank := 0
	for _, e := range BuildPlayerBoard(t.Roster, t.Ledger, t.TopK).Entries {
		if e.PlayerID == playerID {
			rank = e.Rank
			break
		}
	}

	progression := BuildProgression(t.Rounds, playerID)

	return &model.PlayerDetail{
		Player:       *player,
		Score:        t.Ledger.Score(playerID),
		Rank:         rank,
		RoundsPlayed: len(progression),
		Progression:  progression,
	}, nil
}

// BuildScoreSeries returns every roster player's running total across all
// rounds, including rounds they sat out
func BuildScoreSeries(roster []model.Player, rounds []model.Round) []model.ScoreSeries {
	series := make([]model.ScoreSeries, len(roster))
	for i, p := range roster {
		totals := make([]float64, len(rounds))
		var total float64
		for j, r := range rounds {
			if delta, ok := r.DeltaFor(p.ID); ok {
				total += delta
			}
			totals[j] = total
		}
		series[i] = model.ScoreSeries{PlayerID: p.ID, Name: p.Name, Totals: totals}
	}
	return series
}
