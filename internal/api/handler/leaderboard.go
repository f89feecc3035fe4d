package handler

import (
	"net/http"

	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

// LeaderboardHandler serves the player and group boards
type LeaderboardHandler struct {
	controller *tournament.Controller
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(controller *tournament.Controller) *LeaderboardHandler {
	return &LeaderboardHandler{controller: controller}
}

// Players handles GET /api/v1/leaderboard/players
func (h *LeaderboardHandler) Players(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PlayerBoardFromModel(h.controller.PlayerBoard()))
}

// Groups handles GET /api/v1/leaderboard/groups
func (h *LeaderboardHandler) Groups(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.GroupBoardFromModel(h.controller.GroupBoard()))
}
