package handler

import (
	"net/http"

	"github.com/mcoot/tilescore/internal/api/request"
	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

// TournamentHandler handles settings, grouping and reset endpoints
type TournamentHandler struct {
	controller *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(controller *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{controller: controller}
}

// Get handles GET /api/v1/tournament
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeSummary(w, http.StatusOK)
}

// SetRankBonus handles PUT /api/v1/settings/rank-bonus
func (h *TournamentHandler) SetRankBonus(w http.ResponseWriter, r *http.Request) {
	var req request.RankBonusRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.controller.SetRankBonus(r.Context(), req.Values); err != nil {
		WriteError(w, err)
		return
	}

	h.writeSummary(w, http.StatusOK)
}

// SetTopK handles PUT /api/v1/settings/top-k
func (h *TournamentHandler) SetTopK(w http.ResponseWriter, r *http.Request) {
	var req request.TopKRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.controller.SetTopK(r.Context(), req.TopK); err != nil {
		WriteError(w, err)
		return
	}

	h.writeSummary(w, http.StatusOK)
}

// SetGrouping handles PUT /api/v1/grouping
func (h *TournamentHandler) SetGrouping(w http.ResponseWriter, r *http.Request) {
	var req request.GroupingRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := h.controller.SetGrouping(r.Context(), req.Enabled, req.ToGroups()); err != nil {
		WriteError(w, err)
		return
	}

	h.writeSummary(w, http.StatusOK)
}

// Reset handles POST /api/v1/reset
func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.controller.Reset(r.Context())
	h.writeSummary(w, http.StatusOK)
}

func (h *TournamentHandler) writeSummary(w http.ResponseWriter, status int) {
	t := h.controller.Snapshot()
	response.JSON(w, status, response.TournamentFromSummary(h.controller.Summary(), t.Groups))
}
