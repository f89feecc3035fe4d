package storage

import (
	"context"
	"errors"
)

// Key names one independently persisted slice of tournament state
type Key string

// Persisted keys
const (
	KeyRoster          Key = "roster"
	KeyLedger          Key = "ledger"
	KeyRounds          Key = "rounds"
	KeyRankBonusTable  Key = "rank_bonus_table"
	KeyTopK            Key = "top_k"
	KeyGroupingEnabled Key = "grouping_enabled"
	KeyGroups          Key = "groups"
)

// AllKeys lists every persisted key in load order
var AllKeys = []Key{
	KeyRoster,
	KeyLedger,
	KeyRounds,
	KeyRankBonusTable,
	KeyTopK,
	KeyGroupingEnabled,
	KeyGroups,
}

// ErrKeyNotFound is returned by Get when nothing is stored under a key
var ErrKeyNotFound = errors.New("key not found")

// Store defines the key/value persistence backends must provide
type Store interface {
	// Get returns the stored bytes, or ErrKeyNotFound
	Get(ctx context.Context, key Key) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key Key, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key Key) error
	// Close releases backend resources
	Close() error
}
