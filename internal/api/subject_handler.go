package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/domain"
)

// SubjectService covers the subject operations the handler needs.
// Implemented by service.SubjectService.
type SubjectService interface {
	Create(ctx context.Context, userID uuid.UUID, name, description, color string) (*domain.Subject, error)
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error)
	Update(ctx context.Context, userID, subjectID uuid.UUID, name, description, color string) (*domain.Subject, error)
	Delete(ctx context.Context, userID, subjectID uuid.UUID) error
}

// SubjectHandler handles subject management requests.
type SubjectHandler struct {
	subjectService SubjectService
	logger         *slog.Logger
}

// NewSubjectHandler creates a new SubjectHandler with the given dependencies.
func NewSubjectHandler(subjectService SubjectService, logger *slog.Logger) *SubjectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubjectHandler{
		subjectService: subjectService,
		logger:         logger.With(slog.String("component", "subject_handler")),
	}
}

// Create handles POST /api/subjects.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	var req SubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	subject, err := h.subjectService.Create(r.Context(), userID, req.Name, req.Description, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create subject")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, subject)
}

// List handles GET /api/subjects.
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	subjects, err := h.subjectService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list subjects")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SubjectListResponse{Subjects: subjects})
}

// Update handles PUT /api/subjects/{id}.
func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, subjectID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	subject, err := h.subjectService.Update(r.Context(), userID, subjectID, req.Name, req.Description, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update subject")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subject)
}

// Delete handles DELETE /api/subjects/{id}.
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, subjectID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.subjectService.Delete(r.Context(), userID, subjectID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete subject")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
