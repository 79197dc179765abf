package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/generation"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/store"
)

// PremiumRemaining is the remaining-count sentinel reported for premium
// users, who have no daily generation limit.
const PremiumRemaining = 999

// GenerationResult carries the outcome of a successful generation.
type GenerationResult struct {
	// Set is the persisted card set, completed with the generated cards.
	Set *domain.CardSet

	// Cards is the generated card list, identical to Set.Cards.
	Cards []domain.Card

	// PlanType is the requesting user's plan at generation time.
	PlanType domain.PlanType

	// Remaining is the number of generations left today: the free limit
	// minus usage for freemium users, or PremiumRemaining for premium.
	Remaining int
}

// GenerationService orchestrates flashcard generation: it reserves a quota
// slot, calls the external generator, derives the card list, and persists
// the completed set.
//
// The quota check and slot reservation happen in a single transaction with
// the user's profile row locked, so concurrent requests from the same user
// serialize and cannot overshoot the daily limit. A pending set created
// inside that transaction counts toward quota immediately; it is marked
// failed (releasing the slot) if the external call does not produce cards.
type GenerationService struct {
	txRunner     store.TransactionRunner
	profileStore store.ProfileStore
	cardSetStore store.CardSetStore
	generator    generation.Generator
	logger       *slog.Logger

	// freeDailyLimit is the number of generations a freemium user may run
	// per UTC day.
	freeDailyLimit int

	// stalePendingAge is the age after which a pending set is considered
	// abandoned by SweepStalePending.
	stalePendingAge time.Duration

	// timeFunc is injectable for testing the quota day window.
	timeFunc func() time.Time
}

// NewGenerationService creates a new GenerationService with the given dependencies.
func NewGenerationService(
	txRunner store.TransactionRunner,
	profileStore store.ProfileStore,
	cardSetStore store.CardSetStore,
	generator generation.Generator,
	freeDailyLimit int,
	stalePendingAge time.Duration,
	logger *slog.Logger,
) *GenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationService{
		txRunner:        txRunner,
		profileStore:    profileStore,
		cardSetStore:    cardSetStore,
		generator:       generator,
		freeDailyLimit:  freeDailyLimit,
		stalePendingAge: stalePendingAge,
		logger:          logger.With(slog.String("component", "generation_service")),
		timeFunc:        time.Now,
	}
}

// GenerateCards runs the full generation pipeline for the given user.
//
// Returns ErrEmptyPrompt if the notes are blank, store.ErrProfileNotFound
// if the user has no profile, ErrDailyLimitReached if a freemium user is
// out of quota, or a generation error if the external call fails after the
// slot was reserved.
func (s *GenerationService) GenerateCards(
	ctx context.Context,
	userID uuid.UUID,
	notes string,
	subject string,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(notes) == "" {
		return nil, ErrEmptyPrompt
	}

	var (
		profile *domain.Profile
		pending *domain.CardSet
		used    int
	)

	// Reserve a quota slot atomically. The profile row lock serializes
	// concurrent generations for the same user.
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		profile, err = s.profileStore.WithTx(tx).GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		start, end := quotaWindow(s.timeFunc())
		used, err = s.cardSetStore.WithTx(tx).CountInWindow(ctx, userID, start, end)
		if err != nil {
			return err
		}

		if profile.IsFreemium() && used >= s.freeDailyLimit {
			return ErrDailyLimitReached
		}

		pending, err = domain.NewPendingCardSet(userID, subject)
		if err != nil {
			return err
		}
		return s.cardSetStore.WithTx(tx).Create(ctx, pending)
	})
	if err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			log.Info("generation rejected: daily limit reached",
				slog.String("user_id", userID.String()),
				slog.Int("used", used))
		}
		return nil, err
	}

	// The slot is reserved; from here on a failure must mark the set
	// failed so the slot is released.
	answer, err := s.generator.Generate(ctx, notes)
	if err != nil {
		s.failSet(ctx, pending, err)
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	cards := generation.BuildCards(notes, answer, subject)
	if err := pending.Complete(cards); err != nil {
		s.failSet(ctx, pending, err)
		return nil, fmt.Errorf("failed to complete card set: %w", err)
	}

	if err := s.cardSetStore.Update(ctx, pending); err != nil {
		log.Error("failed to persist completed card set",
			slog.String("error", err.Error()),
			slog.String("set_id", pending.ID.String()))
		return nil, err
	}

	remaining := PremiumRemaining
	if profile.IsFreemium() {
		remaining = s.freeDailyLimit - used - 1
		if remaining < 0 {
			remaining = 0
		}
	}

	log.Info("generation completed",
		slog.String("user_id", userID.String()),
		slog.String("set_id", pending.ID.String()),
		slog.Int("card_count", len(cards)),
		slog.Int("remaining", remaining))

	return &GenerationResult{
		Set:       pending,
		Cards:     cards,
		PlanType:  profile.PlanType,
		Remaining: remaining,
	}, nil
}

// failSet marks a reserved set as failed so its quota slot is released.
// The original failure is more interesting than any persistence error
// here, so a failed update is only logged.
func (s *GenerationService) failSet(ctx context.Context, set *domain.CardSet, cause error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set.Fail()
	if err := s.cardSetStore.Update(ctx, set); err != nil {
		log.Error("failed to mark card set as failed",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()),
			slog.String("cause", cause.Error()))
		return
	}

	log.Warn("card set marked failed",
		slog.String("set_id", set.ID.String()),
		slog.String("cause", cause.Error()))
}

// SweepStalePending marks pending sets older than the configured age as
// failed. It runs at startup to reconcile generations that were interrupted
// between slot reservation and completion.
func (s *GenerationService) SweepStalePending(ctx context.Context) (int64, error) {
	cutoff := s.timeFunc().UTC().Add(-s.stalePendingAge)
	return s.cardSetStore.FailStalePending(ctx, cutoff)
}

// quotaWindow returns the half-open UTC day interval [00:00, 24:00)
// containing the given instant. The half-open upper bound means a set
// created in the final second of the day still counts toward that day.
func quotaWindow(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
