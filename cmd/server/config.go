package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/tilescore/internal/factory"
)

// Config holds server command settings
type Config struct {
	bind            string
	port            int
	storage         string
	redisURL        string
	postgresDSN     string
	dataDir         string
	namespace       string
	passwordHash    string
	rules           string
	rateLimit       float64
	rateBurst       int
	refresh         int
	sessionDuration time.Duration
	verbose         bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storage {
	case factory.StorageTypeMemory:
	case factory.StorageTypeFile:
		if c.dataDir == "" {
			return errors.New("--data-dir is required with --storage=file")
		}
	case factory.StorageTypeRedis:
		if c.redisURL == "" {
			return errors.New("--redis-url is required with --storage=redis")
		}
	case factory.StorageTypePostgres:
		if c.postgresDSN == "" {
			return errors.New("--postgres-dsn is required with --storage=postgres")
		}
	default:
		return fmt.Errorf("unknown storage type %q (want memory, file, redis or postgres)", c.storage)
	}
	if c.rateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %v", c.rateLimit)
	}
	if c.rateLimit > 0 && c.rateBurst < 1 {
		return fmt.Errorf("rate burst must be at least 1 when rate limiting, got %d", c.rateBurst)
	}
	if c.refresh < 0 {
		return fmt.Errorf("invalid refresh interval: %d", c.refresh)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TILESCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "tilescore-server",
		Short: "Scorekeeping server for an 8-player tiling-game tournament.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TILESCORE_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TILESCORE_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeMemory, "storage backend: memory, file, redis, postgres (env: TILESCORE_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: TILESCORE_REDIS_URL)")
	fs.StringVar(&cfg.postgresDSN, "postgres-dsn", "", "postgres connection string (env: TILESCORE_POSTGRES_DSN)")
	fs.StringVar(&cfg.dataDir, "data-dir", "", "directory for the file backend (env: TILESCORE_DATA_DIR)")
	fs.StringVar(&cfg.namespace, "namespace", "default", "tournament namespace for shared backends (env: TILESCORE_NAMESPACE)")
	fs.StringVar(&cfg.passwordHash, "password-hash", "", "bcrypt hash of the organizer password; empty leaves every route open (env: TILESCORE_PASSWORD_HASH)")
	fs.StringVar(&cfg.rules, "rules", "", "path to a YAML rules file (env: TILESCORE_RULES)")
	fs.Float64Var(&cfg.rateLimit, "rate-limit", 5, "mutating requests per second per client IP; 0 disables (env: TILESCORE_RATE_LIMIT)")
	fs.IntVar(&cfg.rateBurst, "rate-burst", 10, "burst size for the rate limiter (env: TILESCORE_RATE_BURST)")
	fs.IntVar(&cfg.refresh, "refresh", 30, "leaderboard page auto-refresh in seconds; 0 disables (env: TILESCORE_REFRESH)")
	fs.DurationVar(&cfg.sessionDuration, "session-duration", 24*time.Hour, "organizer session lifetime (env: TILESCORE_SESSION_DURATION)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "log at debug level (env: TILESCORE_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
