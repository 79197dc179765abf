package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/store"
)

// PlanSummary describes a user's plan and current daily usage.
type PlanSummary struct {
	// PlanType is the user's current tier.
	PlanType domain.PlanType

	// UsedToday is the number of quota-consuming generations in the
	// current UTC day.
	UsedToday int

	// DailyLimit is the freemium daily cap. Premium users are not limited
	// but the value is reported for display purposes.
	DailyLimit int

	// Remaining is DailyLimit minus UsedToday for freemium users
	// (never negative), or PremiumRemaining for premium users.
	Remaining int
}

// PlanService reports plan status and performs plan upgrades.
// Payment handling happens outside this service; Upgrade records the tier
// change only.
type PlanService struct {
	profileStore   store.ProfileStore
	cardSetStore   store.CardSetStore
	freeDailyLimit int
	logger         *slog.Logger

	// timeFunc is injectable for testing the quota day window.
	timeFunc func() time.Time
}

// NewPlanService creates a new PlanService with the given dependencies.
func NewPlanService(
	profileStore store.ProfileStore,
	cardSetStore store.CardSetStore,
	freeDailyLimit int,
	logger *slog.Logger,
) *PlanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{
		profileStore:   profileStore,
		cardSetStore:   cardSetStore,
		freeDailyLimit: freeDailyLimit,
		logger:         logger.With(slog.String("component", "plan_service")),
		timeFunc:       time.Now,
	}
}

// GetSummary returns the user's plan and current daily usage.
// Returns store.ErrProfileNotFound if the user has no profile.
func (s *PlanService) GetSummary(ctx context.Context, userID uuid.UUID) (*PlanSummary, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, end := quotaWindow(s.timeFunc())
	used, err := s.cardSetStore.CountInWindow(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	remaining := PremiumRemaining
	if profile.IsFreemium() {
		remaining = s.freeDailyLimit - used
		if remaining < 0 {
			remaining = 0
		}
	}

	return &PlanSummary{
		PlanType:   profile.PlanType,
		UsedToday:  used,
		DailyLimit: s.freeDailyLimit,
		Remaining:  remaining,
	}, nil
}

// Upgrade moves the user to the premium tier. Upgrading an already premium
// profile is a no-op so the operation is idempotent.
// Returns store.ErrProfileNotFound if the user has no profile.
func (s *PlanService) Upgrade(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.IsFreemium() {
		return profile, nil
	}

	profile.Upgrade()
	if err := s.profileStore.UpdatePlan(ctx, profile); err != nil {
		return nil, err
	}

	log.Info("plan upgraded",
		slog.String("user_id", userID.String()),
		slog.String("plan_type", string(profile.PlanType)))
	return profile, nil
}
