package middleware

import (
	"log/slog"
	"net/http"

	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
)

// TraceMiddleware assigns a trace ID to every request and stores a
// request-scoped logger carrying that ID in the context. Handlers and
// services retrieve it with logger.FromContext.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		requestLogger := logger.FromContext(ctx).With(
			slog.String("trace_id", shared.GetTraceID(ctx)),
		)
		ctx = logger.WithLogger(ctx, requestLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
