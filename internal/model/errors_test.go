package model

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("commit: %w", NewValidationError(RuleScoreTotal, "sum is %d", 99000))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, RuleScoreTotal, ve.Rule)
	assert.Contains(t, ve.Error(), "99000")
}

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	err := NewNotFoundError(KindPlayer, "p_1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `player "p_1" not found`, err.Error())
}

func TestLockedErrorMatchesSentinel(t *testing.T) {
	assert.ErrorIs(t, ErrGroupingLocked, ErrLocked)
	assert.NotErrorIs(t, ErrGroupingLocked, ErrValidation)
}

func TestNewRankBonusTable(t *testing.T) {
	table, err := NewRankBonusTable([]float64{30, 10, -10, -30})
	require.NoError(t, err)
	assert.Equal(t, RankBonusTable{30, 10, -10, -30}, table)
	assert.Equal(t, 0.0, table.Sum())

	// Unordered tables are allowed
	_, err = NewRankBonusTable([]float64{-20, -10, 10, 20})
	assert.NoError(t, err)
}

func TestNewRankBonusTableRejectsWrongLength(t *testing.T) {
	_, err := NewRankBonusTable([]float64{1, 2, 3})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, RuleRankBonusLength, ve.Rule)
}

func TestNewRankBonusTableRejectsNonFinite(t *testing.T) {
	_, err := NewRankBonusTable([]float64{1, math.Inf(1), 3, 4})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, RuleRankBonusNotFinite, ve.Rule)
}

func TestTournamentCloneIsIndependent(t *testing.T) {
	orig := NewTournament()
	orig.Roster = append(orig.Roster, Player{ID: "p1", Name: "Alice"})
	orig.Ledger["p1"] = 12.5
	orig.Groups = append(orig.Groups, Group{ID: "g1", Name: "Team", Members: []PlayerID{"p1"}})

	clone := orig.Clone()
	clone.Roster[0].Name = "Changed"
	clone.Ledger["p1"] = 0
	clone.Groups[0].Members[0] = "p2"

	assert.Equal(t, "Alice", orig.Roster[0].Name)
	assert.Equal(t, 12.5, orig.Ledger["p1"])
	assert.Equal(t, PlayerID("p1"), orig.Groups[0].Members[0])
}

func TestGroupRemoveMember(t *testing.T) {
	g := Group{ID: "g1", Members: []PlayerID{"a", "b"}}

	assert.True(t, g.RemoveMember("a"))
	assert.Equal(t, []PlayerID{"b"}, g.Members)
	assert.False(t, g.RemoveMember("zzz"))
}
