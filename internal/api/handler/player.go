package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/model"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	controller *tournament.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller *tournament.Controller) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PlayersFromModel(h.controller.Roster()))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if !decode(w, r, &req) {
		return
	}

	player, err := h.controller.AddPlayer(r.Context(), req.Name, req.Avatar)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.controller.PlayerDetail(playerID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerDetailFromModel(detail))
}

// Update handles PATCH /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRequest
	if !decode(w, r, &req) {
		return
	}

	player, err := h.controller.UpdatePlayer(r.Context(), playerID(r), req.ToPatch())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.RemovePlayer(r.Context(), playerID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(mux.Vars(r)["id"])
}
