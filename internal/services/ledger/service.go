package ledger

import (
	"log/slog"

	"github.com/mcoot/tilescore/internal/dependencies/clock"
	"github.com/mcoot/tilescore/internal/dependencies/random"
	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/services/scoring"
)

// RequiredTotal is the raw score sum enforced when EnforceTotal is set
const RequiredTotal = 100000

// Config holds ledger policy fixed for the lifetime of the service
type Config struct {
	// EnforceTotal requires the four raw scores of a round to sum to RequiredTotal
	EnforceTotal bool
}

// Service validates and commits rounds into a tournament's ledger
type Service struct {
	config Config
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
}

// New creates a new ledger Service
func New(config Config, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		config: config,
		clock:  clock,
		random: random,
		logger: logger,
	}
}

// EnforcesTotal reports whether the raw score sum rule is active
func (s *Service) EnforcesTotal() bool {
	return s.config.EnforceTotal
}

// Validate checks round entries against the tournament without mutating it
func (s *Service) Validate(t *model.Tournament, entries []model.SeatEntry) error {
	if len(entries) != model.SeatCount {
		return model.NewValidationError(model.RuleSeatCount,
			"a round needs exactly %d seats, got %d", model.SeatCount, len(entries))
	}

	seen := make(map[model.PlayerID]int, model.SeatCount)
	total := 0
	for i, e := range entries {
		seat := model.Seat(i)
		if e.PlayerID == "" {
			return model.NewValidationError(model.RuleMissingPlayer,
				"no player selected for seat %s", seat)
		}
		if prev, ok := seen[e.PlayerID]; ok {
			return model.NewValidationError(model.RuleDuplicatePlayer,
				"player %q is seated at both %s and %s", e.PlayerID, model.Seat(prev), seat)
		}
		seen[e.PlayerID] = i
		if !t.HasPlayer(e.PlayerID) {
			return model.NewValidationError(model.RuleUnknownPlayer,
				"player %q at seat %s is not in the roster", e.PlayerID, seat)
		}
		total += e.RawScore
	}

	if s.config.EnforceTotal && total != RequiredTotal {
		return model.NewValidationError(model.RuleScoreTotal,
			"raw scores must sum to %d, got %d", RequiredTotal, total)
	}

	return nil
}

// CommitRound validates, scores and appends a round, folding its deltas
// into the ledger. On error the tournament is unchanged.
func (s *Service) CommitRound(t *model.Tournament, entries []model.SeatEntry) (*model.Round, error) {
	if err := s.Validate(t, entries); err != nil {
		return nil, err
	}

	var seated [model.SeatCount]model.SeatEntry
	copy(seated[:], entries)

	round := model.Round{
		ID:        model.RoundID(s.random.ID(random.PrefixRound)),
		Timestamp: s.clock.Now(),
		Breakdown: scoring.ComputeRoundDeltas(seated, t.RankBonus),
	}
	for i, e := range seated {
		round.Seats[i] = e.PlayerID
		round.RawScores[i] = e.RawScore
	}

	if t.Ledger == nil {
		t.Ledger = make(model.Ledger)
	}
	for _, b := range round.Breakdown {
		t.Ledger.Add(b.PlayerID, b.Delta)
	}
	t.Rounds = append(t.Rounds, round)

	s.logger.Info("round committed",
		slog.String("round_id", string(round.ID)),
		slog.Int("round_number", len(t.Rounds)),
	)

	return &round, nil
}

// Reset zeroes every roster player's total and clears the round history.
// Clearing the history also lifts the grouping lock.
func (s *Service) Reset(t *model.Tournament) {
	discarded := len(t.Rounds)

	t.Ledger = make(model.Ledger, len(t.Roster))
	for _, p := range t.Roster {
		t.Ledger[p.ID] = 0
	}
	t.Rounds = []model.Round{}

	s.logger.Info("tournament reset", slog.Int("rounds_discarded", discarded))
}

// Fold recomputes cumulative totals from round history alone
func Fold(rounds []model.Round) model.Ledger {
	out := make(model.Ledger)
	for _, r := range rounds {
		for _, b := range r.Breakdown {
			out.Add(b.PlayerID, b.Delta)
		}
	}
	return out
}

// Consistent reports whether every roster player's total matches the fold of
// the round history
func Consistent(t *model.Tournament) bool {
	folded := Fold(t.Rounds)
	for _, p := range t.Roster {
		if t.Ledger.Score(p.ID) != folded.Score(p.ID) {
			return false
		}
	}
	return true
}
