package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/service"
)

// GenerationService covers the generation pipeline the handler needs.
// Implemented by service.GenerationService.
type GenerationService interface {
	GenerateCards(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error)
}

// GenerateHandler handles flashcard generation requests.
type GenerateHandler struct {
	generationService GenerationService
	freeDailyLimit    int
	logger            *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler with the given dependencies.
// freeDailyLimit is echoed in the quota-exhausted message.
func NewGenerateHandler(generationService GenerationService, freeDailyLimit int, logger *slog.Logger) *GenerateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateHandler{
		generationService: generationService,
		freeDailyLimit:    freeDailyLimit,
		logger:            logger.With(slog.String("component", "generate_handler")),
	}
}

// Generate handles POST /api/generate.
// It reserves a quota slot, calls the generation backend, and returns the
// generated cards with the persisted set and updated quota status.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Prompt is required")
		return
	}

	result, err := h.generationService.GenerateCards(r.Context(), userID, req.Prompt, req.Subject)
	if err != nil {
		// Quota exhaustion carries an upgrade hint and a zero remaining
		// count alongside the error, unlike the generic error body.
		if errors.Is(err, service.ErrDailyLimitReached) {
			h.logger.Warn("daily generation limit reached",
				slog.String("user_id", userID.String()),
				slog.String("trace_id", shared.GetTraceID(r.Context())))
			shared.RespondWithJSON(w, r, http.StatusTooManyRequests, QuotaExceededResponse{
				Error: "Daily limit reached",
				Message: fmt.Sprintf(
					"You've reached your daily limit of %d flashcards. Upgrade to Premium for unlimited generation!",
					h.freeDailyLimit),
				RemainingCount: 0,
			})
			return
		}
		HandleAPIError(w, r, err, "Failed to generate flashcards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Flashcards:     result.Cards,
		RemainingCount: result.Remaining,
		PlanType:       string(result.PlanType),
		SavedFlashcard: result.Set,
	})
}
