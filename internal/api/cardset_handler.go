package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/quiz"
)

// CardSetService covers the card set operations the handler needs.
// Implemented by service.CardSetService.
type CardSetService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)
	Get(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error)
	Delete(ctx context.Context, userID, setID uuid.UUID) error
}

// CardSetHandler handles saved flashcard set requests.
type CardSetHandler struct {
	cardSetService CardSetService
	logger         *slog.Logger
}

// NewCardSetHandler creates a new CardSetHandler with the given dependencies.
func NewCardSetHandler(cardSetService CardSetService, logger *slog.Logger) *CardSetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardSetHandler{
		cardSetService: cardSetService,
		logger:         logger.With(slog.String("component", "cardset_handler")),
	}
}

// List handles GET /api/flashcards.
func (h *CardSetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	sets, err := h.cardSetService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcard sets")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardSetListResponse{FlashcardSets: sets})
}

// Get handles GET /api/flashcards/{id}.
func (h *CardSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	set, err := h.cardSetService.Get(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get flashcard set")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, set)
}

// Delete handles DELETE /api/flashcards/{id}.
func (h *CardSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.cardSetService.Delete(r.Context(), userID, setID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard set")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Quiz handles GET /api/flashcards/{id}/quiz.
// Query parameters: mode (multiple_choice, fill_blank, true_false; defaults
// to multiple_choice) and seed (optional int64 for reproducible shuffles).
func (h *CardSetHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	mode := quiz.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = quiz.ModeMultipleChoice
	}

	var seed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid seed format")
			return
		}
		seed = parsed
	}

	set, err := h.cardSetService.Get(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get flashcard set")
		return
	}

	questions, err := quiz.Build(set.Cards, mode, seed)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
		SetID:     set.ID,
		Mode:      mode,
		Questions: questions,
	})
}
