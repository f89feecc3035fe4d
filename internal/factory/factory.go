package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/tilescore/internal/config"
	"github.com/mcoot/tilescore/internal/dependencies/clock"
	"github.com/mcoot/tilescore/internal/dependencies/random"
	"github.com/mcoot/tilescore/internal/metrics"
	"github.com/mcoot/tilescore/internal/services/auth"
	"github.com/mcoot/tilescore/internal/services/ledger"
	"github.com/mcoot/tilescore/internal/services/roster"
	"github.com/mcoot/tilescore/internal/services/tournament"
	"github.com/mcoot/tilescore/internal/storage"
	filestorage "github.com/mcoot/tilescore/internal/storage/file"
	"github.com/mcoot/tilescore/internal/storage/memory"
	pgstorage "github.com/mcoot/tilescore/internal/storage/postgres"
	redisstorage "github.com/mcoot/tilescore/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeFile     = "file"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Store      storage.Store
	Repository *storage.Repository

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Observability
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// Services
	Rules         config.Rules
	LedgerService *ledger.Service
	RosterService *roster.Service
	Controller    *tournament.Controller
	AuthService   *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// DataDir is the directory used by the file backend
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
	// Rules holds tournament rules (optional)
	// If RankBonus is nil, defaults to config.DefaultRules()
	Rules config.Rules
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
}

// New creates a new application with all dependencies wired and the
// persisted tournament loaded
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rules := cfg.Rules
	if rules.RankBonus == nil {
		rules = config.DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		_ = store.Close()
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), random.New(), rules, cfg.AuthConfig, logger)
	app.Controller.Load(ctx)
	return app, nil
}

func newStore(ctx context.Context, cfg Config) (storage.Store, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		return filestorage.New(cfg.DataDir)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(ctx, *cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, file, redis or postgres", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Store,
	clk clock.Clock,
	rnd random.Random,
	rules config.Rules,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	m := metrics.New()

	repo := storage.NewRepository(store, m, logger).WithSeed(storage.Seed{
		RankBonus: rules.RankBonusTable(),
		TopK:      rules.TopK,
	})
	ledgerService := ledger.New(ledger.Config{EnforceTotal: rules.EnforceTotal}, clk, rnd, logger)
	rosterService := roster.New(rnd, logger)
	controller := tournament.NewController(repo, ledgerService, rosterService, m, logger)
	authService := auth.New(clk, authCfg)

	return &App{
		Store:         store,
		Repository:    repo,
		Clock:         clk,
		Random:        rnd,
		Metrics:       m,
		Logger:        logger,
		Rules:         rules,
		LedgerService: ledgerService,
		RosterService: rosterService,
		Controller:    controller,
		AuthService:   authService,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Store.Close()
}
