package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilescore/internal/services/tournament"
	"github.com/mcoot/tilescore/internal/web/handler"
	"github.com/mcoot/tilescore/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *tournament.Controller
	// RefreshSeconds sets the page auto-reload interval; 0 disables it
	RefreshSeconds int
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	leaderboardHandler := handler.NewLeaderboardHandler(cfg.Controller, cfg.Logger, cfg.RefreshSeconds)

	r.HandleFunc("/", leaderboardHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}", leaderboardHandler.Player).Methods(http.MethodGet)

	return r
}
