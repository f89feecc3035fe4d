package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tilescore/internal/middleware"
)

// quietPaths are automatic browser fetches answered without an access log line
var quietPaths = map[string]bool{
	"/favicon.ico": true,
	"/robots.txt":  true,
}

// Logging logs page requests under the web component, skipping favicon and robots fetches
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	logged := middleware.Logging(logger.With(slog.String("component", "web")))
	return func(next http.Handler) http.Handler {
		withLog := logged(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if quietPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			withLog.ServeHTTP(w, r)
		})
	}
}
