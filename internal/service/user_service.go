package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/platform/logger"
	"github.com/studyflash/studyflash-api/internal/service/auth"
	"github.com/studyflash/studyflash-api/internal/store"
)

// UserService handles account registration and credential verification.
// Registration creates the user and their freemium profile atomically so
// that no account can exist without a plan.
type UserService struct {
	txRunner     store.TransactionRunner
	userStore    store.UserStore
	profileStore store.ProfileStore
	verifier     auth.PasswordVerifier
	logger       *slog.Logger
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(
	txRunner store.TransactionRunner,
	userStore store.UserStore,
	profileStore store.ProfileStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		txRunner:     txRunner,
		userStore:    userStore,
		profileStore: profileStore,
		verifier:     verifier,
		logger:       logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new user account with a freemium profile.
// Returns store.ErrEmailExists if the email is already taken, or a domain
// validation error if the email or password is invalid.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		profile, err := domain.NewProfile(user.ID)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		return s.profileStore.WithTx(tx).Create(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Info("registration rejected: email already taken")
		} else {
			log.Error("registration failed", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate verifies the given credentials and returns the user.
// Returns ErrInvalidCredentials for both unknown emails and wrong passwords
// so callers cannot probe which emails are registered.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("authentication failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for authentication",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
