package handler

import (
	"net/http"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

// RoundHandler handles round submission and history endpoints
type RoundHandler struct {
	controller *tournament.Controller
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(controller *tournament.Controller) *RoundHandler {
	return &RoundHandler{controller: controller}
}

// List handles GET /api/v1/rounds
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.RoundsFromViews(h.controller.Rounds()))
}

// Submit handles POST /api/v1/rounds
func (h *RoundHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRoundRequest
	if !decode(w, r, &req) {
		return
	}

	entries, err := req.ToEntries()
	if err != nil {
		WriteError(w, err)
		return
	}

	round, err := h.controller.SubmitRound(r.Context(), entries)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoundFromView(*round))
}
