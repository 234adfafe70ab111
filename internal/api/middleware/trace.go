// Package middleware holds the HTTP middleware chain: request tracing and
// API-key authentication for administrative endpoints.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/IsakPar/hanzi-vocab-val/internal/api/shared"
)

// Trace adds a trace ID to the request context. Applied early in the
// chain so every subsequent handler and log line can correlate on it.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
