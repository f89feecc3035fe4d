package testutil

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/tilescore/internal/model"
)

// FixedTime is the reference time handed to mock clocks in tests
var FixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TournamentWithPlayers returns a default tournament whose roster holds
// one player per ID, named after the ID, each with a zero ledger entry
func TournamentWithPlayers(ids ...model.PlayerID) *model.Tournament {
	t := model.NewTournament()
	for _, id := range ids {
		t.Roster = append(t.Roster, model.Player{ID: id, Name: string(id)})
		t.Ledger[id] = 0
	}
	return t
}

// Seats builds seat entries from parallel player ID and raw score arrays
func Seats(ids [model.SeatCount]model.PlayerID, raws [model.SeatCount]int) []model.SeatEntry {
	entries := make([]model.SeatEntry, model.SeatCount)
	for i := range entries {
		entries[i] = model.SeatEntry{PlayerID: ids[i], RawScore: raws[i]}
	}
	return entries
}
