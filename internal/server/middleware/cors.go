package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/amishk599/lexiroute/internal/config"
)

const corsMethods = "POST, OPTIONS"

// CORS returns middleware that sets Cross-Origin Resource Sharing headers and
// answers every OPTIONS preflight with 204 without calling next.
func CORS(cfg config.CORSConfig) Middleware {
	wildcard := slices.Contains(cfg.AllowedOrigins, "*")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(cfg.AllowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", corsMethods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
