package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflash/studyflash-api/internal/api/shared"
)

func TestTraceMiddlewareAssignsTraceID(t *testing.T) {
	t.Parallel()

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	TraceMiddleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, traceID, 32, "trace ID should be 16 bytes hex encoded")
}

func TestTraceMiddlewareUniquePerRequest(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[shared.GetTraceID(r.Context())] = true
	})

	wrapped := TraceMiddleware(next)
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Len(t, seen, 10, "every request gets its own trace ID")
}
