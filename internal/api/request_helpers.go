package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/api/middleware"
	"github.com/studyflash/studyflash-api/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user ID from the request
// context. If absent it writes a 401 response and returns false; the caller
// should return immediately.
func getUserIDFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID parses the named chi URL parameter as a UUID. On failure it
// writes a 400 response and returns false; the caller should return
// immediately.
func getPathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+param+" format")
		return uuid.Nil, false
	}
	return id, true
}

// handleUserIDAndPathUUID combines the two common handler preconditions:
// an authenticated user and a valid UUID path parameter. A false return
// means the response has already been written.
func handleUserIDAndPathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, ok := getPathUUID(w, r, param)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}
