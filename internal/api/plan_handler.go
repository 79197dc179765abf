package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/api/shared"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/service"
)

// PlanService covers the plan operations the handler needs.
// Implemented by service.PlanService.
type PlanService interface {
	GetSummary(ctx context.Context, userID uuid.UUID) (*service.PlanSummary, error)
	Upgrade(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

// PlanHandler handles plan status and upgrade requests.
type PlanHandler struct {
	planService  PlanService
	subjectLimit int
	logger       *slog.Logger
}

// NewPlanHandler creates a new PlanHandler with the given dependencies.
// subjectLimit is the freemium subject cap, reported for display purposes.
func NewPlanHandler(planService PlanService, subjectLimit int, logger *slog.Logger) *PlanHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanHandler{
		planService:  planService,
		subjectLimit: subjectLimit,
		logger:       logger.With(slog.String("component", "plan_handler")),
	}
}

// Get handles GET /api/plan.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	summary, err := h.planService.GetSummary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get plan status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PlanResponse{
		PlanType:     string(summary.PlanType),
		UsedToday:    summary.UsedToday,
		DailyLimit:   summary.DailyLimit,
		Remaining:    summary.Remaining,
		SubjectLimit: h.subjectLimit,
	})
}

// Upgrade handles POST /api/plan/upgrade.
// The upgrade is idempotent: upgrading an already premium profile succeeds
// without change.
func (h *PlanHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	profile, err := h.planService.Upgrade(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to upgrade plan")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
