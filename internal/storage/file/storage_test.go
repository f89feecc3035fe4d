package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilescore/internal/storage"
	"github.com/mcoot/tilescore/internal/testutil"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "data")
	var err error
	s.storage, err = New(s.dir)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSetAndGet() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyLedger, []byte(`{"p_1":3}`)))

	data, err := s.storage.Get(s.ctx, storage.KeyLedger)
	s.Require().NoError(err)
	s.JSONEq(`{"p_1":3}`, string(data))
	s.FileExists(filepath.Join(s.dir, "ledger.json"))
}

func (s *StorageSuite) TestGetMissingKey() {
	_, err := s.storage.Get(s.ctx, storage.KeyRounds)
	s.ErrorIs(err, storage.ErrKeyNotFound)
}

func (s *StorageSuite) TestOverwriteLeavesNoTempFiles() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyTopK, []byte("2")))
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyTopK, []byte("3")))

	data, err := s.storage.Get(s.ctx, storage.KeyTopK)
	s.Require().NoError(err)
	s.Equal("3", string(data))

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Set(s.ctx, storage.KeyGroups, []byte("[]")))
	s.Require().NoError(s.storage.Delete(s.ctx, storage.KeyGroups))

	_, err := s.storage.Get(s.ctx, storage.KeyGroups)
	s.ErrorIs(err, storage.ErrKeyNotFound)
	s.NoError(s.storage.Delete(s.ctx, storage.KeyGroups))
}

func (s *StorageSuite) TestSurvivesReopen() {
	repo := storage.NewRepository(s.storage, nil, testutil.NopLogger())
	t := testutil.TournamentWithPlayers("A", "B", "C", "D")
	t.Ledger["C"] = -7.5
	s.Require().NoError(repo.SaveAll(s.ctx, t))

	reopened, err := New(s.dir)
	s.Require().NoError(err)
	loaded := storage.NewRepository(reopened, nil, testutil.NopLogger()).Load(s.ctx)

	s.Equal(t.Roster, loaded.Roster)
	s.Equal(-7.5, loaded.Ledger.Score("C"))
}
