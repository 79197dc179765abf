package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
)

// CardSetStore defines the interface for flashcard set persistence.
type CardSetStore interface {
	// Create saves a new card set to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, set *domain.CardSet) error

	// GetByID retrieves a card set by its unique ID.
	// Returns ErrCardSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)

	// ListByUser retrieves all card sets owned by the given user,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)

	// CountInWindow returns the number of non-failed card sets the user
	// created in the half-open interval [start, end). Failed sets do not
	// consume quota, so they are excluded.
	CountInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)

	// Update saves the status and content of an existing card set.
	// Returns ErrCardSetNotFound if the set does not exist.
	Update(ctx context.Context, set *domain.CardSet) error

	// Delete removes a card set from the store by its ID.
	// Returns ErrCardSetNotFound if the set does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FailStalePending marks pending sets older than the cutoff as failed
	// and returns the number of sets swept. Used at startup to reconcile
	// generations interrupted between the external call and persistence.
	FailStalePending(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a new CardSetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardSetStore
}
