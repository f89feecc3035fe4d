package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tilescore/internal/api/apierr"
	"github.com/mcoot/tilescore/internal/middleware"
)

// Recovery answers handler panics with the INTERNAL_ERROR JSON body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), func(w http.ResponseWriter, _ *http.Request, _ any) {
		w.Header().Set("Connection", "close")
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
