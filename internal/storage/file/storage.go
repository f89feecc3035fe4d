package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/tilescore/internal/storage"
)

// Storage keeps one JSON file per key inside a directory
type Storage struct {
	dir string
}

// New creates a file storage rooted at dir, creating it if needed
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) path(key storage.Key) string {
	return filepath.Join(s.dir, string(key)+".json")
}

func (s *Storage) Get(ctx context.Context, key storage.Key) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrKeyNotFound
	}
	return data, err
}

// Set writes to a temp file and renames it so readers never see a partial value
func (s *Storage) Set(ctx context.Context, key storage.Key, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, string(key)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *Storage) Delete(ctx context.Context, key storage.Key) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Storage) Close() error {
	return nil
}
