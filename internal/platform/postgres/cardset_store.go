package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/store"
)

// PostgresCardSetStore implements the store.CardSetStore interface
// using a PostgreSQL database as the storage backend. Cards are stored
// in a JSONB content column on the flashcard_sets table.
type PostgresCardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardSetStore creates a new PostgreSQL implementation of the CardSetStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCardSetStore(db store.DBTX, logger *slog.Logger) *PostgresCardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "cardset_store")),
	}
}

// Ensure PostgresCardSetStore implements store.CardSetStore interface
var _ store.CardSetStore = (*PostgresCardSetStore)(nil)

// Create implements store.CardSetStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresCardSetStore) Create(ctx context.Context, set *domain.CardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("card set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return err
	}

	content, err := set.ContentJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize card content: %w", err)
	}

	query := `
		INSERT INTO flashcard_sets (id, user_id, title, status, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		set.ID,
		set.UserID,
		set.Title,
		set.Status,
		content,
		set.CreatedAt,
		set.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during card set creation",
				slog.String("user_id", set.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, set.UserID)
		}

		log.Error("failed to create card set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return MapError(err)
	}

	log.Info("card set created successfully",
		slog.String("set_id", set.ID.String()),
		slog.String("user_id", set.UserID.String()),
		slog.String("status", string(set.Status)))
	return nil
}

// GetByID implements store.CardSetStore.GetByID
// Returns store.ErrCardSetNotFound if the set does not exist.
func (s *PostgresCardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, status, content, created_at, updated_at
		FROM flashcard_sets
		WHERE id = $1
	`

	set, err := s.scanCardSet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card set not found", slog.String("set_id", id.String()))
			return nil, store.ErrCardSetNotFound
		}
		log.Error("failed to get card set by ID",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return nil, MapError(err)
	}

	return set, nil
}

// ListByUser implements store.CardSetStore.ListByUser
// Returns an empty slice if the user has no card sets.
func (s *PostgresCardSetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, status, content, created_at, updated_at
		FROM flashcard_sets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query card sets",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var sets []*domain.CardSet
	for rows.Next() {
		set, err := s.scanCardSet(rows)
		if err != nil {
			log.Error("failed to scan card set row",
				slog.String("error", err.Error()))
			return nil, err
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if sets == nil {
		sets = []*domain.CardSet{}
	}

	return sets, nil
}

// CountInWindow implements store.CardSetStore.CountInWindow
// The window is half-open: created_at >= start AND created_at < end.
// Failed sets are excluded because they do not consume quota.
func (s *PostgresCardSetStore) CountInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM flashcard_sets
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at < $3
		  AND status != $4
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, start, end, domain.CardSetStatusFailed).Scan(&count)
	if err != nil {
		log.Error("failed to count card sets in window",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// Update implements store.CardSetStore.Update
// Returns store.ErrCardSetNotFound if the set does not exist.
func (s *PostgresCardSetStore) Update(ctx context.Context, set *domain.CardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("card set validation failed during update",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return err
	}

	content, err := set.ContentJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize card content: %w", err)
	}

	query := `
		UPDATE flashcard_sets
		SET title = $1, status = $2, content = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		set.Title,
		set.Status,
		content,
		set.UpdatedAt,
		set.ID,
	)

	if err != nil {
		log.Error("failed to update card set",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card set"); err != nil {
		log.Debug("card set not found for update",
			slog.String("set_id", set.ID.String()))
		return store.ErrCardSetNotFound
	}

	log.Info("card set updated successfully",
		slog.String("set_id", set.ID.String()),
		slog.String("status", string(set.Status)))
	return nil
}

// Delete implements store.CardSetStore.Delete
// Returns store.ErrCardSetNotFound if the set does not exist.
func (s *PostgresCardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM flashcard_sets WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete card set",
			slog.String("error", err.Error()),
			slog.String("set_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card set"); err != nil {
		log.Debug("card set not found for delete", slog.String("set_id", id.String()))
		return store.ErrCardSetNotFound
	}

	log.Info("card set deleted successfully", slog.String("set_id", id.String()))
	return nil
}

// FailStalePending implements store.CardSetStore.FailStalePending
// It marks pending sets created before the cutoff as failed so that
// interrupted generations release their quota slots.
func (s *PostgresCardSetStore) FailStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE flashcard_sets
		SET status = $1, updated_at = $2
		WHERE status = $3 AND created_at < $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		domain.CardSetStatusFailed,
		time.Now().UTC(),
		domain.CardSetStatusPending,
		cutoff,
	)
	if err != nil {
		log.Error("failed to sweep stale pending card sets",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	swept, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if swept > 0 {
		log.Info("swept stale pending card sets", slog.Int64("count", swept))
	}
	return swept, nil
}

// WithTx implements store.CardSetStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresCardSetStore) WithTx(tx *sql.Tx) store.CardSetStore {
	return &PostgresCardSetStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanCardSet.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCardSet reads one flashcard_sets row, deserializing the JSONB content
// column into the card list.
func (s *PostgresCardSetStore) scanCardSet(row rowScanner) (*domain.CardSet, error) {
	var set domain.CardSet
	var status string
	var content json.RawMessage

	err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.Title,
		&status,
		&content,
		&set.CreatedAt,
		&set.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	set.Status = domain.CardSetStatus(status)
	if err := set.SetContentJSON(content); err != nil {
		return nil, fmt.Errorf("failed to deserialize card content: %w", err)
	}

	return &set, nil
}
