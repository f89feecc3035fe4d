package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/tilescore/internal/model"
)

// WriteFailureRecorder is notified whenever a key fails to persist
type WriteFailureRecorder interface {
	StorageWriteFailed(key string)
}

// Seed holds the settings a tournament starts with when none are stored
type Seed struct {
	RankBonus model.RankBonusTable
	TopK      int
}

// Repository maps the tournament aggregate onto independently stored keys
type Repository struct {
	store    Store
	recorder WriteFailureRecorder
	seed     Seed
	logger   *slog.Logger
}

// NewRepository creates a Repository over the given store.
// recorder may be nil.
func NewRepository(store Store, recorder WriteFailureRecorder, logger *slog.Logger) *Repository {
	return &Repository{
		store:    store,
		recorder: recorder,
		seed: Seed{
			RankBonus: model.DefaultRankBonusTable(),
			TopK:      model.DefaultTopK,
		},
		logger: logger,
	}
}

// WithSeed replaces the settings used for keys absent from the store
func (r *Repository) WithSeed(seed Seed) *Repository {
	r.seed = seed
	return r
}

// Load reads every key, substituting defaults for missing or unreadable values.
// Load never fails; problems are logged as warnings.
func (r *Repository) Load(ctx context.Context) *model.Tournament {
	t := model.NewTournament()
	t.RankBonus = r.seed.RankBonus
	t.TopK = r.seed.TopK

	var roster []model.Player
	if r.read(ctx, KeyRoster, &roster) {
		t.Roster = nonNil(roster)
	}

	var ledger map[model.PlayerID]float64
	r.read(ctx, KeyLedger, &ledger)
	for _, p := range t.Roster {
		t.Ledger[p.ID] = ledger[p.ID]
	}

	var rounds []model.Round
	if r.read(ctx, KeyRounds, &rounds) {
		t.Rounds = nonNil(rounds)
	}

	var bonus []float64
	if r.read(ctx, KeyRankBonusTable, &bonus) {
		table, err := model.NewRankBonusTable(bonus)
		if err != nil {
			r.warnDefault(KeyRankBonusTable, err)
		} else {
			t.RankBonus = table
		}
	}

	var topK int
	if r.read(ctx, KeyTopK, &topK) {
		if topK < 1 {
			r.warnDefault(KeyTopK, fmt.Errorf("top_k must be positive, got %d", topK))
		} else {
			t.TopK = topK
		}
	}

	var enabled bool
	if r.read(ctx, KeyGroupingEnabled, &enabled) {
		t.GroupingEnabled = enabled
	}

	var groups []model.Group
	if r.read(ctx, KeyGroups, &groups) {
		for i := range groups {
			groups[i].Members = nonNil(groups[i].Members)
		}
		t.Groups = nonNil(groups)
	}

	r.logger.Info("tournament loaded",
		slog.Int("players", len(t.Roster)),
		slog.Int("rounds", len(t.Rounds)),
		slog.Int("groups", len(t.Groups)),
	)

	return t
}

// Save writes the named keys from the tournament.
// Every key is attempted; failures are joined into the returned error.
func (r *Repository) Save(ctx context.Context, t *model.Tournament, keys ...Key) error {
	var errs []error
	for _, key := range keys {
		if err := r.write(ctx, key, valueFor(t, key)); err != nil {
			if r.recorder != nil {
				r.recorder.StorageWriteFailed(string(key))
			}
			errs = append(errs, fmt.Errorf("saving %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// SaveAll writes every key
func (r *Repository) SaveAll(ctx context.Context, t *model.Tournament) error {
	return r.Save(ctx, t, AllKeys...)
}

// read decodes key into dst, returning false when the default should be kept
func (r *Repository) read(ctx context.Context, key Key, dst any) bool {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false
	}
	if err != nil {
		r.warnDefault(key, err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.warnDefault(key, err)
		return false
	}
	return true
}

func (r *Repository) write(ctx context.Context, key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, data)
}

func (r *Repository) warnDefault(key Key, err error) {
	r.logger.Warn("stored value unusable, using default",
		slog.String("key", string(key)),
		slog.String("error", err.Error()),
	)
}

func valueFor(t *model.Tournament, key Key) any {
	switch key {
	case KeyRoster:
		return t.Roster
	case KeyLedger:
		return t.Ledger
	case KeyRounds:
		return t.Rounds
	case KeyRankBonusTable:
		return t.RankBonus.Slice()
	case KeyTopK:
		return t.TopK
	case KeyGroupingEnabled:
		return t.GroupingEnabled
	case KeyGroups:
		return t.Groups
	default:
		return nil
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
