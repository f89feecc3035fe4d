package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/storage"
	"github.com/mcoot/tilescore/internal/storage/memory"
	"github.com/mcoot/tilescore/internal/testutil"
)

// failingStore rejects writes to selected keys
type failingStore struct {
	*memory.Storage
	failSet map[storage.Key]bool
	failGet map[storage.Key]bool
}

func (f *failingStore) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	if f.failGet[key] {
		return nil, errors.New("read unavailable")
	}
	return f.Storage.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key storage.Key, value []byte) error {
	if f.failSet[key] {
		return errors.New("write unavailable")
	}
	return f.Storage.Set(ctx, key, value)
}

type recorder struct {
	keys []string
}

func (r *recorder) StorageWriteFailed(key string) {
	r.keys = append(r.keys, key)
}

type RepositorySuite struct {
	suite.Suite
	store    *failingStore
	recorder *recorder
	repo     *storage.Repository
	ctx      context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.store = &failingStore{
		Storage: memory.New(),
		failSet: map[storage.Key]bool{},
		failGet: map[storage.Key]bool{},
	}
	s.recorder = &recorder{}
	s.repo = storage.NewRepository(s.store, s.recorder, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RepositorySuite) sampleTournament() *model.Tournament {
	t := testutil.TournamentWithPlayers("A", "B", "C", "D")
	t.Roster[0].Avatar = "a.png"
	t.Roster[1].Note = "late arrival"
	t.Ledger["A"] = 35.5
	t.Ledger["B"] = -12.25
	t.RankBonus = model.RankBonusTable{15, 5, -5, -15}
	t.TopK = 2
	t.GroupingEnabled = true
	t.Groups = []model.Group{
		{ID: "g_1", Name: "One", Members: []model.PlayerID{"A", "B"}},
		{ID: "g_2", Name: "Two", Members: []model.PlayerID{"C", "D"}},
	}
	t.Rounds = []model.Round{{
		ID:        "r_1",
		Timestamp: testutil.FixedTime.Add(time.Minute),
		Seats:     [4]model.PlayerID{"A", "B", "C", "D"},
		RawScores: [4]int{45000, 33000, 25000, 20000},
		Breakdown: [4]model.Breakdown{
			{PlayerID: "A", Raw: 45000, Base: 15, Bonus: 20, Delta: 35, Rank: 0},
			{PlayerID: "B", Raw: 33000, Base: 3, Bonus: 10, Delta: 13, Rank: 1},
			{PlayerID: "C", Raw: 25000, Base: -5, Bonus: -10, Delta: -15, Rank: 2},
			{PlayerID: "D", Raw: 20000, Base: -10, Bonus: -20, Delta: -30, Rank: 3},
		},
	}}
	return t
}

func (s *RepositorySuite) TestLoadEmptyStoreGivesDefaults() {
	t := s.repo.Load(s.ctx)

	s.Empty(cmp.Diff(model.NewTournament(), t))
}

func (s *RepositorySuite) TestRoundTrip() {
	original := s.sampleTournament()

	s.Require().NoError(s.repo.SaveAll(s.ctx, original))
	loaded := s.repo.Load(s.ctx)

	if diff := cmp.Diff(original, loaded); diff != "" {
		s.Failf("round trip mismatch", "diff (-want +got):\n%s", diff)
	}
}

func (s *RepositorySuite) TestSaveWritesOnlyNamedKeys() {
	t := s.sampleTournament()

	s.Require().NoError(s.repo.Save(s.ctx, t, storage.KeyRoster, storage.KeyTopK))

	s.ElementsMatch([]storage.Key{storage.KeyRoster, storage.KeyTopK}, s.store.Keys())
}

func (s *RepositorySuite) TestLoadFillsLedgerForRoster() {
	t := s.sampleTournament()
	s.Require().NoError(s.repo.Save(s.ctx, t, storage.KeyRoster))

	loaded := s.repo.Load(s.ctx)

	s.Len(loaded.Ledger, 4)
	s.Equal(0.0, loaded.Ledger.Score("A"))
}

func (s *RepositorySuite) TestLoadDropsLedgerEntriesOutsideRoster() {
	t := s.sampleTournament()
	t.Ledger["ghost"] = 99
	s.Require().NoError(s.repo.SaveAll(s.ctx, t))

	loaded := s.repo.Load(s.ctx)

	_, ok := loaded.Ledger["ghost"]
	s.False(ok)
	s.Equal(35.5, loaded.Ledger.Score("A"))
}

func (s *RepositorySuite) TestLoadUnparseableValuesFallBack() {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyRoster, []byte("{not json")))
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyTopK, []byte(`"seven"`)))
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyRankBonusTable, []byte(`[1, 2, 3]`)))
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyGroupingEnabled, []byte(`true`)))

	loaded := s.repo.Load(s.ctx)

	s.Empty(loaded.Roster)
	s.Equal(model.DefaultTopK, loaded.TopK)
	s.Equal(model.DefaultRankBonusTable(), loaded.RankBonus)
	s.True(loaded.GroupingEnabled)
}

func (s *RepositorySuite) TestLoadRejectsNonPositiveTopK() {
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyTopK, []byte(`0`)))

	loaded := s.repo.Load(s.ctx)

	s.Equal(model.DefaultTopK, loaded.TopK)
}

func (s *RepositorySuite) TestLoadReadErrorFallsBack() {
	t := s.sampleTournament()
	s.Require().NoError(s.repo.SaveAll(s.ctx, t))
	s.store.failGet[storage.KeyRounds] = true

	loaded := s.repo.Load(s.ctx)

	s.Empty(loaded.Rounds)
	s.Len(loaded.Roster, 4)
}

func (s *RepositorySuite) TestSaveAttemptsEveryKey() {
	s.store.failSet[storage.KeyLedger] = true
	t := s.sampleTournament()

	err := s.repo.Save(s.ctx, t, storage.KeyRoster, storage.KeyLedger, storage.KeyRounds)

	s.Require().Error(err)
	s.Contains(err.Error(), "saving ledger")
	s.Equal([]string{"ledger"}, s.recorder.keys)
	s.ElementsMatch([]storage.Key{storage.KeyRoster, storage.KeyRounds}, s.store.Keys())
}

func (s *RepositorySuite) TestNilRecorderIsAllowed() {
	s.store.failSet[storage.KeyTopK] = true
	repo := storage.NewRepository(s.store, nil, testutil.NopLogger())

	s.Error(repo.Save(s.ctx, model.NewTournament(), storage.KeyTopK))
}

func (s *RepositorySuite) TestSeedAppliesOnlyToAbsentKeys() {
	seeded := storage.NewRepository(s.store, nil, testutil.NopLogger()).WithSeed(storage.Seed{
		RankBonus: model.RankBonusTable{40, 0, 0, -40},
		TopK:      6,
	})
	s.Require().NoError(s.store.Set(s.ctx, storage.KeyTopK, []byte("3")))

	loaded := seeded.Load(s.ctx)

	s.Equal(model.RankBonusTable{40, 0, 0, -40}, loaded.RankBonus)
	s.Equal(3, loaded.TopK)
}
