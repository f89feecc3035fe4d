package tournament

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/dependencies/mocks"
	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/services/ledger"
	"github.com/mcoot/tilescore/internal/services/roster"
	"github.com/mcoot/tilescore/internal/storage"
	"github.com/mcoot/tilescore/internal/storage/memory"
	"github.com/mcoot/tilescore/internal/testutil"
)

type fakeRecorder struct {
	mu       sync.Mutex
	rounds   int
	failures []string
	players  int
}

func (r *fakeRecorder) RoundCommitted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds++
}

func (r *fakeRecorder) ValidationFailed(rule string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, rule)
}

func (r *fakeRecorder) SetSize(players, rounds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = players
}

// brokenStore fails every write
type brokenStore struct {
	*memory.Storage
}

func (b *brokenStore) Set(ctx context.Context, key storage.Key, value []byte) error {
	return errors.New("disk full")
}

type ControllerSuite struct {
	suite.Suite
	store      *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	recorder   *fakeRecorder
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(testutil.FixedTime)
	s.random = mocks.NewMockRandom()
	s.recorder = &fakeRecorder{}
	s.controller = s.newController(s.store, ledger.Config{})
	s.ctx = context.Background()
	s.controller.Load(s.ctx)
}

func (s *ControllerSuite) newController(store storage.Store, cfg ledger.Config) *Controller {
	logger := testutil.NopLogger()
	return NewController(
		storage.NewRepository(store, nil, logger),
		ledger.New(cfg, s.clock, s.random, logger),
		roster.New(s.random, logger),
		s.recorder,
		logger,
	)
}

func (s *ControllerSuite) addPlayers(names ...string) []model.PlayerID {
	ids := make([]model.PlayerID, len(names))
	for i, name := range names {
		p, err := s.controller.AddPlayer(s.ctx, name, "")
		s.Require().NoError(err)
		ids[i] = p.ID
	}
	return ids
}

func (s *ControllerSuite) seat(ids []model.PlayerID, raws [4]int) []model.SeatEntry {
	var seated [4]model.PlayerID
	copy(seated[:], ids)
	return testutil.Seats(seated, raws)
}

func (s *ControllerSuite) reloaded() *model.Tournament {
	other := s.newController(s.store, ledger.Config{})
	other.Load(s.ctx)
	return other.Snapshot()
}

func (s *ControllerSuite) TestStartsWithDefaults() {
	summary := s.controller.Summary()

	s.Equal(0, summary.Players)
	s.Equal(model.DefaultTopK, summary.TopK)
	s.Equal(model.DefaultRankBonusTable(), summary.RankBonus)
	s.False(summary.GroupingEnabled)
	s.False(summary.EnforceTotal)
}

func (s *ControllerSuite) TestEveryMutationIsPersisted() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")
	_, err := s.controller.UpdatePlayer(s.ctx, ids[0], model.PlayerPatch{Note: strPtr("captain")})
	s.Require().NoError(err)
	_, err = s.controller.SetRankBonus(s.ctx, []float64{30, 10, -10, -30})
	s.Require().NoError(err)
	s.Require().NoError(s.controller.SetTopK(s.ctx, 2))
	_, err = s.controller.SetGrouping(s.ctx, true, []model.Group{
		{Name: "North", Members: []model.PlayerID{ids[0], ids[1]}},
		{Name: "South", Members: []model.PlayerID{ids[2], ids[3]}},
	})
	s.Require().NoError(err)
	_, err = s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
	s.Require().NoError(err)

	if diff := cmp.Diff(s.controller.Snapshot(), s.reloaded()); diff != "" {
		s.Failf("reloaded state differs", "diff (-want +got):\n%s", diff)
	}
}

func (s *ControllerSuite) TestSubmitRoundUpdatesBoards() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di", "Ed")

	round, err := s.controller.SubmitRound(s.ctx, s.seat([]model.PlayerID{ids[3], ids[2], ids[1], ids[0]},
		[4]int{45000, 33000, 25000, 20000}))
	s.Require().NoError(err)
	s.NotEmpty(round.ID)
	s.Equal(1, round.Number)
	s.Equal("Di", round.Seats[0].Name)

	board := s.controller.PlayerBoard()
	s.Equal(ids[3], board.Entries[0].PlayerID)
	s.Equal(35.0, board.Entries[0].Score)
	s.Equal(ids[2], board.Entries[1].PlayerID)
	s.Equal(ids[4], board.Entries[2].PlayerID, "idle player with 0 sits above negative scores")
	s.Equal(1, s.recorder.rounds)

	history := s.controller.Rounds()
	s.Require().Len(history, 1)
	s.Equal("Di", history[0].Seats[0].Name)
}

func (s *ControllerSuite) TestRejectionsAreCounted() {
	ids := s.addPlayers("Ann", "Bo", "Cy")

	_, err := s.controller.SubmitRound(s.ctx, s.seat(append(ids, "nobody"), [4]int{1, 2, 3, 4}))
	s.ErrorIs(err, model.ErrValidation)
	_, err = s.controller.AddPlayer(s.ctx, " ", "")
	s.ErrorIs(err, model.ErrValidation)

	s.Equal([]string{model.RuleUnknownPlayer, model.RuleEmptyName}, s.recorder.failures)
	s.Empty(s.controller.Rounds())
}

func (s *ControllerSuite) TestSetTopKRange() {
	s.addPlayers("Ann", "Bo", "Cy")

	err := s.controller.SetTopK(s.ctx, 4)
	s.ErrorIs(err, model.ErrValidation)
	err = s.controller.SetTopK(s.ctx, 0)
	s.ErrorIs(err, model.ErrValidation)

	s.NoError(s.controller.SetTopK(s.ctx, 3))
	s.Equal(3, s.controller.PlayerBoard().TopK)
}

func (s *ControllerSuite) TestSetRankBonusValidates() {
	_, err := s.controller.SetRankBonus(s.ctx, []float64{1, 2})
	s.ErrorIs(err, model.ErrValidation)
	s.Equal(model.DefaultRankBonusTable(), s.controller.Summary().RankBonus)
}

func (s *ControllerSuite) TestGroupingLockLifecycle() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")
	groups := []model.Group{
		{Name: "North", Members: []model.PlayerID{ids[0], ids[1]}},
		{Name: "South", Members: []model.PlayerID{ids[2], ids[3]}},
	}
	_, err := s.controller.SetGrouping(s.ctx, true, groups)
	s.Require().NoError(err)

	_, err = s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
	s.Require().NoError(err)
	s.True(s.controller.Summary().GroupingLocked)

	_, err = s.controller.SetGrouping(s.ctx, false, nil)
	s.ErrorIs(err, model.ErrLocked)

	s.controller.Reset(s.ctx)
	s.False(s.controller.Summary().GroupingLocked)

	_, err = s.controller.SetGrouping(s.ctx, false, nil)
	s.NoError(err)
}

func (s *ControllerSuite) TestGroupBoardDisabledIsEmpty() {
	board := s.controller.GroupBoard()

	s.False(board.Enabled)
	s.Empty(board.Entries)
}

func (s *ControllerSuite) TestGroupBoardAfterRemoval() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")
	_, err := s.controller.SetGrouping(s.ctx, true, []model.Group{
		{ID: "g_n", Name: "North", Members: []model.PlayerID{ids[0], ids[1]}},
		{ID: "g_s", Name: "South", Members: []model.PlayerID{ids[2], ids[3]}},
	})
	s.Require().NoError(err)
	_, err = s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
	s.Require().NoError(err)

	s.Require().NoError(s.controller.RemovePlayer(s.ctx, ids[1]))

	board := s.controller.GroupBoard()
	s.Require().Len(board.Entries, 2)
	s.Equal(model.GroupID("g_n"), board.Entries[0].GroupID)
	s.Equal(35.0, board.Entries[0].Score)
	s.Len(board.Entries[0].Members, 1)

	history := s.controller.Rounds()
	s.Equal(model.UnknownPlayerName, history[0].Seats[1].Name)
}

func (s *ControllerSuite) TestResetPersists() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")
	_, err := s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
	s.Require().NoError(err)

	s.controller.Reset(s.ctx)

	loaded := s.reloaded()
	s.Empty(loaded.Rounds)
	for _, id := range ids {
		s.Equal(0.0, loaded.Ledger.Score(id))
	}
	s.Len(loaded.Roster, 4)
}

func (s *ControllerSuite) TestPlayerDetail() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")
	_, err := s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
	s.Require().NoError(err)

	detail, err := s.controller.PlayerDetail(ids[1])
	s.Require().NoError(err)
	s.Equal(2, detail.Rank)
	s.Equal(13.0, detail.Score)
	s.Len(detail.Progression, 1)

	_, err = s.controller.PlayerDetail("missing")
	s.ErrorIs(err, model.ErrNotFound)
}

func (s *ControllerSuite) TestWriteFailuresAreSwallowed() {
	controller := s.newController(&brokenStore{Storage: memory.New()}, ledger.Config{})

	p, err := controller.AddPlayer(s.ctx, "Ann", "")
	s.Require().NoError(err)
	s.True(controller.Snapshot().HasPlayer(p.ID))
}

func (s *ControllerSuite) TestEnforceTotalPolicy() {
	controller := s.newController(memory.New(), ledger.Config{EnforceTotal: true})
	var ids []model.PlayerID
	for _, name := range []string{"Ann", "Bo", "Cy", "Di"} {
		p, err := controller.AddPlayer(s.ctx, name, "")
		s.Require().NoError(err)
		ids = append(ids, p.ID)
	}

	_, err := controller.SubmitRound(s.ctx, s.seat(ids, [4]int{30000, 30000, 30000, 30000}))
	s.ErrorIs(err, model.ErrValidation)
	s.True(controller.Summary().EnforceTotal)
}

func (s *ControllerSuite) TestConcurrentSubmissionsStayConsistent() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
			_ = s.controller.PlayerBoard()
		}()
	}
	wg.Wait()

	snapshot := s.controller.Snapshot()
	s.Len(snapshot.Rounds, 20)
	s.True(ledger.Consistent(snapshot))
	s.InDelta(700.0, snapshot.Ledger.Score(ids[0]), 1e-9)
}

func (s *ControllerSuite) TestConcurrentSubmissionsReportOwnNumber() {
	ids := s.addPlayers("Ann", "Bo", "Cy", "Di")

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		numbers = make(map[model.RoundID]int)
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view, err := s.controller.SubmitRound(s.ctx, s.seat(ids, [4]int{45000, 33000, 25000, 20000}))
			if err != nil {
				return
			}
			mu.Lock()
			numbers[view.ID] = view.Number
			mu.Unlock()
		}()
	}
	wg.Wait()

	history := s.controller.Rounds()
	s.Require().Len(numbers, len(history))
	for _, v := range history {
		s.Equal(v.Number, numbers[v.ID], "round %s", v.ID)
	}
}

func strPtr(v string) *string {
	return &v
}
