package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilescore/internal/api/handler"
	"github.com/mcoot/tilescore/internal/api/middleware"
	"github.com/mcoot/tilescore/internal/metrics"
	httpmw "github.com/mcoot/tilescore/internal/middleware"
	"github.com/mcoot/tilescore/internal/services/auth"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Controller  *tournament.Controller
	AuthService *auth.Service
	Metrics     *metrics.Metrics           // optional, serves /metrics when set
	RateLimiter *middleware.IPRateLimiter // optional, limits mutating routes when set
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tournamentHandler := handler.NewTournamentHandler(cfg.Controller)
	playerHandler := handler.NewPlayerHandler(cfg.Controller)
	roundHandler := handler.NewRoundHandler(cfg.Controller)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Controller)
	exportHandler := handler.NewExportHandler(cfg.Controller, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)

	// Create middleware
	organizerMiddleware := middleware.Organizer(cfg.AuthService)
	rateLimitMiddleware := middleware.RateLimit(cfg.RateLimiter)
	loggingMiddleware := httpmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Read routes (always open)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/tournament", tournamentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rounds", roundHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/players", leaderboardHandler.Players).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/groups", leaderboardHandler.Groups).Methods(http.MethodGet)
	api.HandleFunc("/export/standings.xlsx", exportHandler.Workbook).Methods(http.MethodGet)
	api.HandleFunc("/export/chart.png", exportHandler.Chart).Methods(http.MethodGet)

	// Auth routes (rate limited, no session required)
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(rateLimitMiddleware)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Mutating routes (organizer only when a password is configured)
	protected := api.NewRoute().Subrouter()
	protected.Use(rateLimitMiddleware)
	protected.Use(organizerMiddleware)
	protected.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/settings/rank-bonus", tournamentHandler.SetRankBonus).Methods(http.MethodPut)
	protected.HandleFunc("/settings/top-k", tournamentHandler.SetTopK).Methods(http.MethodPut)
	protected.HandleFunc("/grouping", tournamentHandler.SetGrouping).Methods(http.MethodPut)
	protected.HandleFunc("/rounds", roundHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/reset", tournamentHandler.Reset).Methods(http.MethodPost)

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
