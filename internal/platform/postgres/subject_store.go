package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/store"
)

// PostgresSubjectStore implements the store.SubjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSubjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubjectStore creates a new PostgreSQL implementation of the SubjectStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSubjectStore(db store.DBTX, logger *slog.Logger) *PostgresSubjectStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSubjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "subject_store")),
	}
}

// Ensure PostgresSubjectStore implements store.SubjectStore interface
var _ store.SubjectStore = (*PostgresSubjectStore)(nil)

// Create implements store.SubjectStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during create",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	query := `
		INSERT INTO subjects (id, user_id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		subject.ID,
		subject.UserID,
		subject.Name,
		subject.Description,
		subject.Color,
		subject.CreatedAt,
		subject.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during subject creation",
				slog.String("user_id", subject.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, subject.UserID)
		}

		log.Error("failed to create subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return MapError(err)
	}

	log.Info("subject created successfully",
		slog.String("subject_id", subject.ID.String()),
		slog.String("user_id", subject.UserID.String()))
	return nil
}

// GetByID implements store.SubjectStore.GetByID
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *PostgresSubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, color, created_at, updated_at
		FROM subjects
		WHERE id = $1
	`

	var subject domain.Subject
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&subject.ID,
		&subject.UserID,
		&subject.Name,
		&subject.Description,
		&subject.Color,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subject not found", slog.String("subject_id", id.String()))
			return nil, store.ErrSubjectNotFound
		}
		log.Error("failed to get subject by ID",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return nil, MapError(err)
	}

	return &subject, nil
}

// ListByUser implements store.SubjectStore.ListByUser
// Returns an empty slice if the user has no subjects.
func (s *PostgresSubjectStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, description, color, created_at, updated_at
		FROM subjects
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query subjects",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var subjects []*domain.Subject
	for rows.Next() {
		var subject domain.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.UserID,
			&subject.Name,
			&subject.Description,
			&subject.Color,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan subject row",
				slog.String("error", err.Error()))
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if subjects == nil {
		subjects = []*domain.Subject{}
	}

	return subjects, nil
}

// CountByUser implements store.SubjectStore.CountByUser
func (s *PostgresSubjectStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM subjects WHERE user_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		log.Error("failed to count subjects",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// Update implements store.SubjectStore.Update
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *PostgresSubjectStore) Update(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during update",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	query := `
		UPDATE subjects
		SET name = $1, description = $2, color = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		subject.Name,
		subject.Description,
		subject.Color,
		subject.UpdatedAt,
		subject.ID,
	)

	if err != nil {
		log.Error("failed to update subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "subject"); err != nil {
		log.Debug("subject not found for update",
			slog.String("subject_id", subject.ID.String()))
		return store.ErrSubjectNotFound
	}

	log.Info("subject updated successfully",
		slog.String("subject_id", subject.ID.String()))
	return nil
}

// Delete implements store.SubjectStore.Delete
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *PostgresSubjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM subjects WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "subject"); err != nil {
		log.Debug("subject not found for delete", slog.String("subject_id", id.String()))
		return store.ErrSubjectNotFound
	}

	log.Info("subject deleted successfully", slog.String("subject_id", id.String()))
	return nil
}

// WithTx implements store.SubjectStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresSubjectStore) WithTx(tx *sql.Tx) store.SubjectStore {
	return &PostgresSubjectStore{
		db:     tx,
		logger: s.logger,
	}
}
