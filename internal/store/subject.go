package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
)

// SubjectStore defines the interface for subject persistence.
type SubjectStore interface {
	// Create saves a new subject to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, subject *domain.Subject) error

	// GetByID retrieves a subject by its unique ID.
	// Returns ErrSubjectNotFound if the subject does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// ListByUser retrieves all subjects owned by the given user,
	// ordered by creation time.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error)

	// CountByUser returns the number of subjects owned by the given user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// Update saves changes to an existing subject.
	// Returns ErrSubjectNotFound if the subject does not exist.
	Update(ctx context.Context, subject *domain.Subject) error

	// Delete removes a subject from the store by its ID.
	// Returns ErrSubjectNotFound if the subject does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new SubjectStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SubjectStore
}
