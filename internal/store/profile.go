package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
)

// ProfileStore defines the interface for plan profile persistence.
type ProfileStore interface {
	// Create saves a new profile to the store.
	// Returns ErrProfileExists if the user already has a profile.
	// Returns ErrInvalidEntity if the user does not exist.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile owned by the given user.
	// Returns ErrProfileNotFound if no profile exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// GetByUserIDForUpdate retrieves the profile and locks its row for the
	// duration of the surrounding transaction. Concurrent quota checks for
	// the same user serialize on this lock. Must be called through WithTx.
	// Returns ErrProfileNotFound if no profile exists.
	GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UpdatePlan persists a plan change for the given profile.
	// Returns ErrProfileNotFound if the profile does not exist.
	UpdatePlan(ctx context.Context, profile *domain.Profile) error

	// WithTx returns a new ProfileStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
