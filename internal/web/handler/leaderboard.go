package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/services/tournament"
	"github.com/mcoot/tilescore/internal/web/templates/layout"
	"github.com/mcoot/tilescore/internal/web/templates/pages"
)

// LeaderboardHandler renders the read-only leaderboard pages
type LeaderboardHandler struct {
	controller *tournament.Controller
	logger     *slog.Logger
	refresh    int
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
// refresh is the page auto-reload interval in seconds; 0 disables it.
func NewLeaderboardHandler(controller *tournament.Controller, logger *slog.Logger, refresh int) *LeaderboardHandler {
	return &LeaderboardHandler{
		controller: controller,
		logger:     logger,
		refresh:    refresh,
	}
}

// Home renders the leaderboard page
func (h *LeaderboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.LeaderboardData{
		PageData: layout.PageData{
			Title:   "Leaderboard",
			Refresh: h.refresh,
		},
		Players: h.controller.PlayerBoard(),
		Groups:  h.controller.GroupBoard(),
		Rounds:  h.controller.Rounds(),
	}

	h.render(w, r, http.StatusOK, pages.Leaderboard(data))
}

// Player renders a player's detail page
func (h *LeaderboardHandler) Player(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	detail, err := h.controller.PlayerDetail(id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.render(w, r, http.StatusNotFound, pages.NotFound("No player with that ID."))
			return
		}
		h.logger.Error("failed to build player detail", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.PlayerData{
		PageData: layout.PageData{Title: detail.Player.Name},
		Detail:   detail,
	}
	h.render(w, r, http.StatusOK, pages.Player(data))
}

func (h *LeaderboardHandler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
	}
}
