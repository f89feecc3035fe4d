package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mcoot/tilescore/internal/storage"
	"github.com/mcoot/tilescore/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	dsn     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tilescore"),
		tcpostgres.WithUsername("tilescore"),
		tcpostgres.WithPassword("tilescore"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(s.T(), container)
	s.Require().NoError(err)

	s.dsn, err = container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
}

func (s *StorageSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var err error
	s.storage, err = New(ctx, Config{DSN: s.dsn, Namespace: s.T().Name()})
	s.Require().NoError(err)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyTopK, []byte("3")))

	data, err := s.storage.Get(s.ctx, storage.KeyTopK)
	s.Require().NoError(err)
	s.Equal([]byte("3"), data)
}

func (s *StorageSuite) TestUpsertReplacesValue() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyTopK, []byte("3")))
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyTopK, []byte("5")))

	data, err := s.storage.Get(s.ctx, storage.KeyTopK)
	s.Require().NoError(err)
	s.Equal([]byte("5"), data)
}

func (s *StorageSuite) TestGetMissingKey() {
	_, err := s.storage.Get(s.ctx, storage.KeyRoster)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestNamespacesAreIsolated() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyGroups, []byte("[]")))

	other := NewWithPool(s.storage.pool, "someone-else")
	_, err := other.Get(s.ctx, storage.KeyGroups)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyRounds, []byte("[]")))
	s.Require().NoError(s.storage.Delete(s.ctx, storage.KeyRounds))

	_, err := s.storage.Get(s.ctx, storage.KeyRounds)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestEnsureSchemaIsIdempotent() {
	s.NoError(s.storage.EnsureSchema(s.ctx))
}

func (s *StorageSuite) TestRepositoryRoundTrip() {
	repo := storage.NewRepository(s.storage, nil, testutil.NopLogger())
	t := testutil.TournamentWithPlayers("A", "B", "C", "D")
	t.Ledger["B"] = 4.5
	t.GroupingEnabled = true

	s.Require().NoError(repo.SaveAll(s.ctx, t))
	loaded := repo.Load(s.ctx)

	s.Equal(t.Roster, loaded.Roster)
	s.Equal(4.5, loaded.Ledger.Score("B"))
	s.True(loaded.GroupingEnabled)
}
