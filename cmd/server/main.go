package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/mcoot/tilescore/internal/api"
	"github.com/mcoot/tilescore/internal/api/middleware"
	"github.com/mcoot/tilescore/internal/config"
	"github.com/mcoot/tilescore/internal/factory"
	"github.com/mcoot/tilescore/internal/services/auth"
	pgstorage "github.com/mcoot/tilescore/internal/storage/postgres"
	redisstorage "github.com/mcoot/tilescore/internal/storage/redis"
	"github.com/mcoot/tilescore/internal/web"
)

const sessionCleanupInterval = 10 * time.Minute

func main() {
	cfg := &Config{}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCmd(cfg).ExecuteContext(ctx); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	// Set up logging with JSON output
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	rules, err := config.LoadRules(cfg.rules)
	if err != nil {
		return err
	}

	authCfg := auth.DefaultConfig()
	authCfg.PasswordHash = cfg.passwordHash
	authCfg.SessionDuration = cfg.sessionDuration

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.storage,
		DataDir:     cfg.dataDir,
		Rules:       rules,
		AuthConfig:  authCfg,
	}

	switch cfg.storage {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		redisCfg.Namespace = cfg.namespace
		factoryCfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = cfg.postgresDSN
		pgCfg.Namespace = cfg.namespace
		factoryCfg.PostgresConfig = &pgCfg
	}

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	if !app.AuthService.Enabled() {
		logger.Warn("no organizer password configured, every route is open")
	}

	var limiter *middleware.IPRateLimiter
	if cfg.rateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(rate.Limit(cfg.rateLimit), cfg.rateBurst)
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Controller:  app.Controller,
		AuthService: app.AuthService,
		Metrics:     app.Metrics,
		RateLimiter: limiter,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		Controller:     app.Controller,
		RefreshSeconds: cfg.refresh,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/metrics", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.bind
	serverConfig.Port = cfg.port
	server := api.NewServer(mux, serverConfig, logger)

	go cleanSessions(ctx, app.AuthService)

	return server.Run(ctx)
}

func cleanSessions(ctx context.Context, authService *auth.Service) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.CleanExpiredSessions()
		}
	}
}
