package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery turns a handler panic into a logged event and hands the response
// over to fallback, which writes whatever error body the caller uses.
func Recovery(logger *slog.Logger, fallback http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logger.Error("handler panic",
					"panic", v,
					"request_id", RequestIDFromCtx(r.Context()),
					"route", r.Method+" "+r.URL.Path,
					"stack", string(debug.Stack()),
				)
				fallback.ServeHTTP(w, r)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
