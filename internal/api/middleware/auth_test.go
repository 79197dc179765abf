package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflash/studyflash-api/internal/service/auth"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return s.claims, s.err
}

func (s *stubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return nil, nil
}

func runAuthenticated(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		gotUserID uuid.UUID
		called    bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, called = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)
	return rec, gotUserID, called
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &stubJWTService{claims: &auth.Claims{UserID: userID, TokenType: "access"}}

	rec, gotUserID, called := runAuthenticated(t, jwtService, "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called, "next handler should run")
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	rec, _, called := runAuthenticated(t, &stubJWTService{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"good-token", "Basic abc123", "Bearer "} {
		rec, _, called := runAuthenticated(t, &stubJWTService{}, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, called)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	rec, _, called := runAuthenticated(t, &stubJWTService{err: auth.ErrExpiredToken}, "Bearer stale")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	rec, _, called := runAuthenticated(t, &stubJWTService{err: auth.ErrInvalidToken}, "Bearer junk")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestGetUserIDMissing(t *testing.T) {
	t.Parallel()

	_, ok := GetUserID(context.Background())
	assert.False(t, ok)
}
