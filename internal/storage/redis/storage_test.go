package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/storage"
	"github.com/mcoot/tilescore/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	client  *redis.Client
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.Namespace = "spring"

	s.storage = NewWithClient(s.client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	err := s.storage.Set(s.ctx, storage.KeyTopK, []byte("3"))
	s.Require().NoError(err)

	data, err := s.storage.Get(s.ctx, storage.KeyTopK)
	s.Require().NoError(err)
	s.Equal([]byte("3"), data)
}

func (s *StorageSuite) TestGetMissingKey() {
	_, err := s.storage.Get(s.ctx, storage.KeyRoster)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestKeysAreNamespaced() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyGroups, []byte("[]")))

	s.True(s.mini.Exists("tilescore:spring:groups"))

	other := NewWithClient(s.client, Config{Namespace: "autumn"})
	_, err := other.Get(s.ctx, storage.KeyGroups)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestSetHasNoExpiry() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyLedger, []byte("{}")))

	s.Zero(s.mini.TTL("tilescore:spring:ledger"))
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyRounds, []byte("[]")))

	s.Require().NoError(s.storage.Delete(s.ctx, storage.KeyRounds))

	_, err := s.storage.Get(s.ctx, storage.KeyRounds)
	s.ErrorIs(err, storage.ErrKeyNotFound)
	s.NoError(s.storage.Delete(s.ctx, storage.KeyRounds), "deleting a missing key is fine")
}

func (s *StorageSuite) TestRepositoryRoundTrip() {
	repo := storage.NewRepository(s.storage, nil, testutil.NopLogger())
	t := testutil.TournamentWithPlayers("A", "B")
	t.Ledger["A"] = 12.5
	t.TopK = 1

	s.Require().NoError(repo.SaveAll(s.ctx, t))
	loaded := repo.Load(s.ctx)

	s.Equal(t.Roster, loaded.Roster)
	s.Equal(12.5, loaded.Ledger.Score("A"))
	s.Equal(1, loaded.TopK)
	s.Equal(model.DefaultRankBonusTable(), loaded.RankBonus)
}

func (s *StorageSuite) TestServerDownReturnsError() {
	s.mini.Close()

	err := s.storage.Set(s.ctx, storage.KeyTopK, []byte("1"))
	s.Error(err)

	_, err = s.storage.Get(s.ctx, storage.KeyTopK)
	s.Error(err)
	s.NotErrorIs(err, storage.ErrKeyNotFound)
}
