package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/store"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	t.Parallel()

	var createdUser *domain.User
	var createdProfile *domain.Profile

	userStore := &mockUserStore{
		createFn: func(ctx context.Context, user *domain.User) error {
			createdUser = user
			return nil
		},
	}
	profileStore := &mockProfileStore{
		createFn: func(ctx context.Context, profile *domain.Profile) error {
			createdProfile = profile
			return nil
		},
	}

	svc := NewUserService(&fakeTxRunner{}, userStore, profileStore, nil, nil)

	user, err := svc.Register(context.Background(), "student@example.com", "a-long-enough-password")
	require.NoError(t, err)

	require.NotNil(t, createdUser)
	require.NotNil(t, createdProfile)
	assert.Equal(t, user.ID, createdUser.ID)
	assert.Equal(t, user.ID, createdProfile.UserID)
	assert.Equal(t, domain.PlanFreemium, createdProfile.PlanType)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(&fakeTxRunner{}, &mockUserStore{}, &mockProfileStore{}, nil, nil)

	_, err := svc.Register(context.Background(), "not-an-email", "a-long-enough-password")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "student@example.com", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	profileCreated := false
	userStore := &mockUserStore{
		createFn: func(ctx context.Context, user *domain.User) error {
			return store.ErrEmailExists
		},
	}
	profileStore := &mockProfileStore{
		createFn: func(ctx context.Context, profile *domain.Profile) error {
			profileCreated = true
			return nil
		},
	}

	svc := NewUserService(&fakeTxRunner{}, userStore, profileStore, nil, nil)

	_, err := svc.Register(context.Background(), "student@example.com", "a-long-enough-password")
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.False(t, profileCreated, "profile must not be created when the user insert fails")
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	stored := &domain.User{
		ID:             userID,
		Email:          "student@example.com",
		HashedPassword: "stored-hash",
	}

	userStore := &mockUserStore{
		getByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	verifier := &mockVerifier{
		compareFn: func(hashedPassword, password string) error {
			if hashedPassword == "stored-hash" && password == "correct-password" {
				return nil
			}
			return errors.New("mismatch")
		},
	}

	svc := NewUserService(&fakeTxRunner{}, userStore, &mockProfileStore{}, verifier, nil)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "student@example.com", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	_, err = svc.Authenticate(ctx, "student@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "unknown@example.com", "correct-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials,
		"unknown email must be indistinguishable from a wrong password")
}
