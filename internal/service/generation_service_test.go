package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/generation"
	"github.com/studyflash/studyflash-api/internal/store"
)

const testNotes = "The mitochondria is the powerhouse of the cell. Ribosomes synthesize proteins from amino acids."

func freemiumProfile(userID uuid.UUID) *domain.Profile {
	profile, err := domain.NewProfile(userID)
	if err != nil {
		panic(err)
	}
	return profile
}

func premiumProfile(userID uuid.UUID) *domain.Profile {
	profile := freemiumProfile(userID)
	profile.Upgrade()
	return profile
}

type generationFixture struct {
	svc          *GenerationService
	profileStore *mockProfileStore
	cardSetStore *mockCardSetStore
	generator    *mockGenerator
	created      []*domain.CardSet
	updated      []*domain.CardSet
}

func newGenerationFixture(t *testing.T, profile *domain.Profile, used int) *generationFixture {
	t.Helper()

	f := &generationFixture{}
	f.profileStore = &mockProfileStore{
		getByUserIDForUpdate: func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
			return profile, nil
		},
	}
	f.cardSetStore = &mockCardSetStore{
		countInWindowFn: func(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
			return used, nil
		},
		createFn: func(ctx context.Context, set *domain.CardSet) error {
			f.created = append(f.created, set)
			return nil
		},
		updateFn: func(ctx context.Context, set *domain.CardSet) error {
			f.updated = append(f.updated, set)
			return nil
		},
	}
	f.generator = &mockGenerator{
		generateFn: func(ctx context.Context, notes string) (string, error) {
			return "The cell's energy and protein machinery.", nil
		},
	}

	f.svc = NewGenerationService(
		&fakeTxRunner{},
		f.profileStore,
		f.cardSetStore,
		f.generator,
		5,
		15*time.Minute,
		nil,
	)
	return f
}

func TestGenerateCardsSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 2)

	result, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "Biology")
	require.NoError(t, err)

	assert.Equal(t, domain.PlanFreemium, result.PlanType)
	assert.Equal(t, 2, result.Remaining, "5 limit - 2 used - 1 for this generation")
	assert.Equal(t, domain.CardSetStatusCompleted, result.Set.Status)
	assert.Equal(t, "Biology", result.Set.Title)
	assert.NotEmpty(t, result.Cards)
	assert.Equal(t, result.Set.Cards, result.Cards)

	// Lead card uses the model answer
	assert.Equal(t, "The cell's energy and protein machinery.", result.Cards[0].Back)

	// Pending set was reserved, then completed in place
	require.Len(t, f.created, 1)
	require.Len(t, f.updated, 1)
	assert.Equal(t, f.created[0].ID, f.updated[0].ID)
}

func TestGenerateCardsDefaultTitle(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 0)

	result, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSetTitle, result.Set.Title)
	for _, card := range result.Cards {
		assert.Equal(t, domain.DefaultSubjectLabel, card.Subject)
	}
}

func TestGenerateCardsEmptyPrompt(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 0)

	_, err := f.svc.GenerateCards(context.Background(), userID, "   ", "Biology")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Empty(t, f.created, "no slot should be reserved for an empty prompt")
}

func TestGenerateCardsDailyLimit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 5)

	_, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	assert.ErrorIs(t, err, ErrDailyLimitReached)
	assert.Empty(t, f.created, "no slot should be reserved at the limit")
}

func TestGenerateCardsPremiumBypassesLimit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, premiumProfile(userID), 50)

	result, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPremium, result.PlanType)
	assert.Equal(t, PremiumRemaining, result.Remaining)
}

func TestGenerateCardsLastSlotReportsZeroRemaining(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 4)

	result, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Remaining)
}

func TestGenerateCardsProfileNotFound(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 0)
	f.profileStore.getByUserIDForUpdate = func(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
		return nil, store.ErrProfileNotFound
	}

	_, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestGenerateCardsUpstreamFailureReleasesSlot(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 0)
	f.generator.generateFn = func(ctx context.Context, notes string) (string, error) {
		return "", generation.ErrTransientFailure
	}

	_, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	assert.ErrorIs(t, err, generation.ErrTransientFailure)

	// The reserved set must be marked failed so the slot is released
	require.Len(t, f.updated, 1)
	assert.Equal(t, domain.CardSetStatusFailed, f.updated[0].Status)
}

func TestGenerateCardsPersistFailure(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 0)
	persistErr := errors.New("connection lost")
	f.cardSetStore.updateFn = func(ctx context.Context, set *domain.CardSet) error {
		return persistErr
	}

	_, err := f.svc.GenerateCards(context.Background(), userID, testNotes, "")
	assert.ErrorIs(t, err, persistErr)
}

func TestSweepStalePending(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	f := newGenerationFixture(t, freemiumProfile(userID), 0)

	var gotCutoff time.Time
	f.cardSetStore.failStalePending = func(ctx context.Context, cutoff time.Time) (int64, error) {
		gotCutoff = cutoff
		return 3, nil
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.timeFunc = func() time.Time { return now }

	swept, err := f.svc.SweepStalePending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	assert.Equal(t, now.Add(-15*time.Minute), gotCutoff)
}

func TestQuotaWindow(t *testing.T) {
	t.Parallel()

	// Last second of the day still falls inside the window
	now := time.Date(2026, 3, 1, 23, 59, 59, 500_000_000, time.UTC)
	start, end := quotaWindow(now)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), end)
	assert.True(t, !now.Before(start) && now.Before(end))

	// Non-UTC instants resolve to the UTC day
	est := time.FixedZone("EST", -5*3600)
	late := time.Date(2026, 3, 1, 22, 0, 0, 0, est) // 03:00 UTC on March 2
	start, _ = quotaWindow(late)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
}
