package tournament

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/services/leaderboard"
	"github.com/mcoot/tilescore/internal/services/ledger"
	"github.com/mcoot/tilescore/internal/services/roster"
	"github.com/mcoot/tilescore/internal/storage"
)

// Recorder receives operational counters from the controller
type Recorder interface {
	RoundCommitted()
	ValidationFailed(rule string)
	SetSize(players, rounds int)
}

// Summary describes the tournament's settings and sizes
type Summary struct {
	Players         int
	Rounds          int
	RankBonus       model.RankBonusTable
	TopK            int
	GroupingEnabled bool
	GroupingLocked  bool
	Groups          int
	EnforceTotal    bool
}

// Controller owns the tournament aggregate and serializes every operation.
// Mutations are persisted after they succeed; write failures are logged and
// the in-memory state stays authoritative.
type Controller struct {
	mu         sync.RWMutex
	tournament *model.Tournament

	repo     *storage.Repository
	ledger   *ledger.Service
	roster   *roster.Service
	recorder Recorder
	logger   *slog.Logger
}

// NewController creates a controller holding a default tournament.
// Call Load to restore persisted state.
func NewController(
	repo *storage.Repository,
	ledgerService *ledger.Service,
	rosterService *roster.Service,
	recorder Recorder,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		tournament: model.NewTournament(),
		repo:       repo,
		ledger:     ledgerService,
		roster:     rosterService,
		recorder:   recorder,
		logger:     logger,
	}
}

// Load replaces the in-memory tournament with the persisted one
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tournament = c.repo.Load(ctx)
	if !ledger.Consistent(c.tournament) {
		c.logger.Warn("persisted ledger disagrees with round history")
	}
	c.updateSize()
}

// AddPlayer registers a new player
func (c *Controller) AddPlayer(ctx context.Context, name, avatar string) (*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.roster.AddPlayer(c.tournament, name, avatar)
	if err != nil {
		return nil, c.rejected(err)
	}
	c.persist(ctx, storage.KeyRoster, storage.KeyLedger)
	return player, nil
}

// RemovePlayer removes a player along with their total and group memberships
func (c *Controller) RemovePlayer(ctx context.Context, id model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.roster.RemovePlayer(c.tournament, id); err != nil {
		return c.rejected(err)
	}
	c.persist(ctx, storage.KeyRoster, storage.KeyLedger, storage.KeyGroups)
	return nil
}

// UpdatePlayer patches a player's details
func (c *Controller) UpdatePlayer(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.roster.UpdatePlayer(c.tournament, id, patch)
	if err != nil {
		return nil, c.rejected(err)
	}
	if !patch.IsEmpty() {
		c.persist(ctx, storage.KeyRoster)
	}
	return player, nil
}

// SetRankBonus replaces the bonus table used for future rounds
func (c *Controller) SetRankBonus(ctx context.Context, values []float64) (model.RankBonusTable, error) {
	table, err := model.NewRankBonusTable(values)
	if err != nil {
		return table, c.rejected(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tournament.RankBonus = table
	c.persist(ctx, storage.KeyRankBonusTable)
	c.logger.Info("rank bonus updated", slog.Any("table", table.Slice()))
	return table, nil
}

// SetTopK moves the player board divider; it must be within 1 and the roster size
func (c *Controller) SetTopK(ctx context.Context, topK int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if topK < 1 || topK > len(c.tournament.Roster) {
		return c.rejected(model.NewValidationError(model.RuleTopKRange,
			"top K must be between 1 and %d, got %d", len(c.tournament.Roster), topK))
	}

	c.tournament.TopK = topK
	c.persist(ctx, storage.KeyTopK)
	return nil
}

// SetGrouping replaces the grouping configuration
func (c *Controller) SetGrouping(ctx context.Context, enabled bool, groups []model.Group) ([]model.Group, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.roster.SetGrouping(c.tournament, enabled, groups); err != nil {
		return nil, c.rejected(err)
	}
	c.persist(ctx, storage.KeyGroupingEnabled, storage.KeyGroups)
	return c.tournament.Clone().Groups, nil
}

// SubmitRound validates and commits a round
func (c *Controller) SubmitRound(ctx context.Context, entries []model.SeatEntry) (*model.RoundView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.ledger.CommitRound(c.tournament, entries)
	if err != nil {
		return nil, c.rejected(err)
	}
	if c.recorder != nil {
		c.recorder.RoundCommitted()
	}
	c.persist(ctx, storage.KeyRounds, storage.KeyLedger)

	view := leaderboard.BuildRoundView(*round, len(c.tournament.Rounds), c.tournament.PlayersByID())
	return &view, nil
}

// Reset zeroes all totals and clears the round history
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ledger.Reset(c.tournament)
	c.persist(ctx, storage.KeyLedger, storage.KeyRounds)
}

// Snapshot returns a deep copy of the current tournament
func (c *Controller) Snapshot() *model.Tournament {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.tournament.Clone()
}

// Summary returns the current settings and sizes
func (c *Controller) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t := c.tournament
	return Summary{
		Players:         len(t.Roster),
		Rounds:          len(t.Rounds),
		RankBonus:       t.RankBonus,
		TopK:            t.TopK,
		GroupingEnabled: t.GroupingEnabled,
		GroupingLocked:  t.GroupingLocked(),
		Groups:          len(t.Groups),
		EnforceTotal:    c.ledger.EnforcesTotal(),
	}
}

// Roster returns the players in registration order
func (c *Controller) Roster() []model.Player {
	return c.Snapshot().Roster
}

// PlayerBoard returns the current player leaderboard
func (c *Controller) PlayerBoard() model.PlayerBoard {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return leaderboard.BuildPlayerBoard(c.tournament.Roster, c.tournament.Ledger, c.tournament.TopK)
}

// GroupBoard returns the group leaderboard, empty when grouping is disabled
func (c *Controller) GroupBoard() model.GroupBoard {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.tournament.GroupingEnabled {
		return model.GroupBoard{Enabled: false, Entries: []model.GroupStanding{}}
	}
	return leaderboard.BuildGroupBoard(c.tournament.Groups, c.tournament.PlayersByID(), c.tournament.Ledger)
}

// Rounds returns the round history with names resolved, oldest first
func (c *Controller) Rounds() []model.RoundView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return leaderboard.BuildRoundHistory(c.tournament.Rounds, c.tournament.PlayersByID())
}

// PlayerDetail returns a player's standing and round-by-round progression
func (c *Controller) PlayerDetail(id model.PlayerID) (*model.PlayerDetail, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return leaderboard.BuildPlayerDetail(c.tournament, id)
}

// ScoreSeries returns every player's running total across the history
func (c *Controller) ScoreSeries() []model.ScoreSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return leaderboard.BuildScoreSeries(c.tournament.Roster, c.tournament.Rounds)
}

// persist writes the given keys and refreshes size gauges. Must hold mu.
func (c *Controller) persist(ctx context.Context, keys ...storage.Key) {
	c.updateSize()
	if err := c.repo.Save(ctx, c.tournament, keys...); err != nil {
		c.logger.Error("failed to persist tournament",
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) updateSize() {
	if c.recorder != nil {
		c.recorder.SetSize(len(c.tournament.Roster), len(c.tournament.Rounds))
	}
}

// rejected records a validation failure and passes the error through
func (c *Controller) rejected(err error) error {
	var verr *model.ValidationError
	if c.recorder != nil && errors.As(err, &verr) {
		c.recorder.ValidationFailed(verr.Rule)
	}
	return err
}
