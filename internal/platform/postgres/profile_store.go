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

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create
// Returns store.ErrProfileExists if the user already has a profile.
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (id, user_id, plan_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.PlanType,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate profile during creation",
				slog.String("user_id", profile.UserID.String()))
			return fmt.Errorf("%w: %v", store.ErrProfileExists, err)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during profile creation",
				slog.String("user_id", profile.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, profile.UserID)
		}

		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()),
		slog.String("plan_type", string(profile.PlanType)))
	return nil
}

// GetByUserID implements store.ProfileStore.GetByUserID
// Returns store.ErrProfileNotFound if no profile exists.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.getByUserID(ctx, userID, false)
}

// GetByUserIDForUpdate implements store.ProfileStore.GetByUserIDForUpdate
// It locks the profile row for the duration of the surrounding transaction
// so that concurrent quota checks for the same user serialize.
// Returns store.ErrProfileNotFound if no profile exists.
func (s *PostgresProfileStore) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.getByUserID(ctx, userID, true)
}

func (s *PostgresProfileStore) getByUserID(ctx context.Context, userID uuid.UUID, forUpdate bool) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, plan_type, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var profile domain.Profile
	var planType string

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&planType,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	profile.PlanType = domain.PlanType(planType)
	return &profile, nil
}

// UpdatePlan implements store.ProfileStore.UpdatePlan
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) UpdatePlan(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during plan update",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		UPDATE profiles
		SET plan_type = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.PlanType,
		profile.UpdatedAt,
		profile.ID,
	)

	if err != nil {
		log.Error("failed to update plan",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "profile"); err != nil {
		log.Debug("profile not found for plan update",
			slog.String("profile_id", profile.ID.String()))
		return store.ErrProfileNotFound
	}

	log.Info("plan updated successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("plan_type", string(profile.PlanType)))
	return nil
}

// WithTx implements store.ProfileStore.WithTx
// It returns a new store instance bound to the given transaction.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
