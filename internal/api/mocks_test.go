package api

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/service"
	"github.com/studyflash/studyflash-api/internal/service/auth"
)

// errNotConfigured is returned by mock methods with no behavior configured,
// so a test fails loudly when a handler calls something unexpected.
var errNotConfigured = errors.New("mock method not configured")

type mockUserService struct {
	registerFn     func(ctx context.Context, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, password)
	}
	return nil, errNotConfigured
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, email, password)
	}
	return nil, errNotConfigured
}

type mockGenerationService struct {
	generateCardsFn func(ctx context.Context, userID uuid.UUID, notes, subject string) (*service.GenerationResult, error)
}

func (m *mockGenerationService) GenerateCards(
	ctx context.Context,
	userID uuid.UUID,
	notes, subject string,
) (*service.GenerationResult, error) {
	if m.generateCardsFn != nil {
		return m.generateCardsFn(ctx, userID, notes, subject)
	}
	return nil, errNotConfigured
}

type mockCardSetService struct {
	listFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)
	getFn    func(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error)
	deleteFn func(ctx context.Context, userID, setID uuid.UUID) error
}

func (m *mockCardSetService) List(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, errNotConfigured
}

func (m *mockCardSetService) Get(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, setID)
	}
	return nil, errNotConfigured
}

func (m *mockCardSetService) Delete(ctx context.Context, userID, setID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, setID)
	}
	return errNotConfigured
}

type mockSubjectService struct {
	createFn func(ctx context.Context, userID uuid.UUID, name, description, color string) (*domain.Subject, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error)
	updateFn func(ctx context.Context, userID, subjectID uuid.UUID, name, description, color string) (*domain.Subject, error)
	deleteFn func(ctx context.Context, userID, subjectID uuid.UUID) error
}

func (m *mockSubjectService) Create(
	ctx context.Context,
	userID uuid.UUID,
	name, description, color string,
) (*domain.Subject, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name, description, color)
	}
	return nil, errNotConfigured
}

func (m *mockSubjectService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, errNotConfigured
}

func (m *mockSubjectService) Update(
	ctx context.Context,
	userID, subjectID uuid.UUID,
	name, description, color string,
) (*domain.Subject, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, subjectID, name, description, color)
	}
	return nil, errNotConfigured
}

func (m *mockSubjectService) Delete(ctx context.Context, userID, subjectID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, subjectID)
	}
	return errNotConfigured
}

type mockPlanService struct {
	getSummaryFn func(ctx context.Context, userID uuid.UUID) (*service.PlanSummary, error)
	upgradeFn    func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
}

func (m *mockPlanService) GetSummary(ctx context.Context, userID uuid.UUID) (*service.PlanSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx, userID)
	}
	return nil, errNotConfigured
}

func (m *mockPlanService) Upgrade(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.upgradeFn != nil {
		return m.upgradeFn(ctx, userID)
	}
	return nil, errNotConfigured
}

type mockJWTService struct {
	generateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	validateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	generateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	validateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.generateTokenFn != nil {
		return m.generateTokenFn(ctx, userID)
	}
	return "access-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, tokenString)
	}
	return nil, errNotConfigured
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.generateRefreshTokenFn != nil {
		return m.generateRefreshTokenFn(ctx, userID)
	}
	return "refresh-token", nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateRefreshTokenFn != nil {
		return m.validateRefreshTokenFn(ctx, tokenString)
	}
	return nil, errNotConfigured
}
