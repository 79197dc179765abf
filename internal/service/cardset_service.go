package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/store"
)

// CardSetService provides read and delete access to a user's saved card
// sets. Every operation enforces ownership: a set belonging to another user
// is reported as not found so existence is never leaked.
type CardSetService struct {
	cardSetStore store.CardSetStore
	logger       *slog.Logger
}

// NewCardSetService creates a new CardSetService with the given dependencies.
func NewCardSetService(cardSetStore store.CardSetStore, logger *slog.Logger) *CardSetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardSetService{
		cardSetStore: cardSetStore,
		logger:       logger.With(slog.String("component", "cardset_service")),
	}
}

// List returns all card sets owned by the given user, newest first.
func (s *CardSetService) List(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	return s.cardSetStore.ListByUser(ctx, userID)
}

// Get returns the card set with the given ID if it is owned by the user.
// Returns store.ErrCardSetNotFound if the set does not exist or belongs
// to someone else.
func (s *CardSetService) Get(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := s.cardSetStore.GetByID(ctx, setID)
	if err != nil {
		return nil, err
	}

	if set.UserID != userID {
		log.Warn("card set access denied",
			slog.String("set_id", setID.String()),
			slog.String("user_id", userID.String()))
		return nil, store.ErrCardSetNotFound
	}

	return set, nil
}

// Delete removes the card set with the given ID if it is owned by the user.
// Returns store.ErrCardSetNotFound if the set does not exist or belongs
// to someone else.
func (s *CardSetService) Delete(ctx context.Context, userID, setID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, setID); err != nil {
		return err
	}
	return s.cardSetStore.Delete(ctx, setID)
}
