package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/store"
)

// SubjectService manages a user's subjects. Creation enforces the freemium
// subject cap inside a transaction that locks the profile row, so concurrent
// requests cannot exceed it, and every per-subject operation enforces
// ownership. Premium users have no subject cap.
type SubjectService struct {
	txRunner     store.TransactionRunner
	subjectStore store.SubjectStore
	profileStore store.ProfileStore
	maxSubjects  int
	logger       *slog.Logger
}

// NewSubjectService creates a new SubjectService with the given dependencies.
func NewSubjectService(
	txRunner store.TransactionRunner,
	subjectStore store.SubjectStore,
	profileStore store.ProfileStore,
	maxSubjects int,
	logger *slog.Logger,
) *SubjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubjectService{
		txRunner:     txRunner,
		subjectStore: subjectStore,
		profileStore: profileStore,
		maxSubjects:  maxSubjects,
		logger:       logger.With(slog.String("component", "subject_service")),
	}
}

// Create adds a new subject for the user.
// Returns ErrSubjectLimitReached if a freemium user already has the maximum
// number of subjects, store.ErrProfileNotFound if the user has no profile,
// or a domain validation error if the fields are invalid.
func (s *SubjectService) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, description, color string,
) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subject, err := domain.NewSubject(userID, name, description, color)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// The profile row lock serializes concurrent creates for the
		// same user so the count below cannot go stale.
		profile, err := s.profileStore.WithTx(tx).GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		txStore := s.subjectStore.WithTx(tx)

		if profile.IsFreemium() {
			count, err := txStore.CountByUser(ctx, userID)
			if err != nil {
				return err
			}
			if count >= s.maxSubjects {
				return ErrSubjectLimitReached
			}
		}

		return txStore.Create(ctx, subject)
	})
	if err != nil {
		return nil, err
	}

	log.Info("subject created",
		slog.String("subject_id", subject.ID.String()),
		slog.String("user_id", userID.String()))
	return subject, nil
}

// List returns all subjects owned by the given user.
func (s *SubjectService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error) {
	return s.subjectStore.ListByUser(ctx, userID)
}

// Get returns the subject with the given ID if it is owned by the user.
// Returns store.ErrSubjectNotFound if the subject does not exist or
// belongs to someone else.
func (s *SubjectService) Get(ctx context.Context, userID, subjectID uuid.UUID) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subject, err := s.subjectStore.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if subject.UserID != userID {
		log.Warn("subject access denied",
			slog.String("subject_id", subjectID.String()),
			slog.String("user_id", userID.String()))
		return nil, store.ErrSubjectNotFound
	}

	return subject, nil
}

// Update renames the subject with the given ID if it is owned by the user.
// Returns store.ErrSubjectNotFound if the subject does not exist or
// belongs to someone else.
func (s *SubjectService) Update(
	ctx context.Context,
	userID, subjectID uuid.UUID,
	name, description, color string,
) (*domain.Subject, error) {
	subject, err := s.Get(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}

	if err := subject.Rename(name, description, color); err != nil {
		return nil, err
	}

	if err := s.subjectStore.Update(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// Delete removes the subject with the given ID if it is owned by the user.
// Returns store.ErrSubjectNotFound if the subject does not exist or
// belongs to someone else.
func (s *SubjectService) Delete(ctx context.Context, userID, subjectID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, subjectID); err != nil {
		return err
	}
	return s.subjectStore.Delete(ctx, subjectID)
}
