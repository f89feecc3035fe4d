package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tilescore/internal/api/response"
	"github.com/mcoot/tilescore/internal/services/export"
	"github.com/mcoot/tilescore/internal/services/tournament"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePNG  = "image/png"
)

// ExportHandler serves spreadsheet and chart downloads
type ExportHandler struct {
	controller *tournament.Controller
	logger     *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(controller *tournament.Controller, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{controller: controller, logger: logger}
}

// Workbook handles GET /api/v1/export/standings.xlsx
func (h *ExportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	data, err := export.Workbook(h.controller.PlayerBoard(), h.controller.GroupBoard(), h.controller.Rounds())
	if err != nil {
		h.logger.Error("failed to build workbook", slog.String("error", err.Error()))
		WriteError(w, NewInternalError())
		return
	}

	response.File(w, contentTypeXLSX, "standings.xlsx", data)
}

// Chart handles GET /api/v1/export/chart.png
func (h *ExportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	data, err := export.ScoreChart(h.controller.ScoreSeries())
	if err != nil {
		h.logger.Error("failed to render chart", slog.String("error", err.Error()))
		WriteError(w, NewInternalError())
		return
	}

	response.File(w, contentTypePNG, "", data)
}
