package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tilescore/internal/middleware"
	"github.com/mcoot/tilescore/internal/web/templates/pages"
)

// Recovery renders the scoreboard error page when a page handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if err := pages.ServerError().Render(r.Context(), w); err != nil {
			logger.Error("render error page", slog.String("error", err.Error()))
		}
	})
}
