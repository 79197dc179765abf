package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/studyflash/studyflash-api/internal/domain"
	"github.com/studyflash/studyflash-api/internal/store"
)

// fakeTxRunner executes the transaction function directly with a nil
// transaction. Mock stores return themselves from WithTx, so the service
// paths run unchanged without a database.
type fakeTxRunner struct {
	// err, when set, is returned without invoking fn.
	err error
}

func (r *fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if r.err != nil {
		return r.err
	}
	return fn(ctx, nil)
}

// mockUserStore implements store.UserStore with function fields.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockProfileStore implements store.ProfileStore with function fields.
type mockProfileStore struct {
	createFn             func(ctx context.Context, profile *domain.Profile) error
	getByUserIDFn        func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	getByUserIDForUpdate func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	updatePlanFn         func(ctx context.Context, profile *domain.Profile) error
}

func (m *mockProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	return m.createFn(ctx, profile)
}

func (m *mockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockProfileStore) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return m.getByUserIDForUpdate(ctx, userID)
}

func (m *mockProfileStore) UpdatePlan(ctx context.Context, profile *domain.Profile) error {
	return m.updatePlanFn(ctx, profile)
}

func (m *mockProfileStore) WithTx(tx *sql.Tx) store.ProfileStore { return m }

// mockSubjectStore implements store.SubjectStore with function fields.
type mockSubjectStore struct {
	createFn      func(ctx context.Context, subject *domain.Subject) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Subject, error)
	listByUserFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error)
	countByUserFn func(ctx context.Context, userID uuid.UUID) (int, error)
	updateFn      func(ctx context.Context, subject *domain.Subject) error
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	return m.createFn(ctx, subject)
}

func (m *mockSubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockSubjectStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockSubjectStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.countByUserFn(ctx, userID)
}

func (m *mockSubjectStore) Update(ctx context.Context, subject *domain.Subject) error {
	return m.updateFn(ctx, subject)
}

func (m *mockSubjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockSubjectStore) WithTx(tx *sql.Tx) store.SubjectStore { return m }

// mockCardSetStore implements store.CardSetStore with function fields.
type mockCardSetStore struct {
	createFn         func(ctx context.Context, set *domain.CardSet) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)
	listByUserFn     func(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)
	countInWindowFn  func(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error)
	updateFn         func(ctx context.Context, set *domain.CardSet) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	failStalePending func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockCardSetStore) Create(ctx context.Context, set *domain.CardSet) error {
	return m.createFn(ctx, set)
}

func (m *mockCardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockCardSetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockCardSetStore) CountInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	return m.countInWindowFn(ctx, userID, start, end)
}

func (m *mockCardSetStore) Update(ctx context.Context, set *domain.CardSet) error {
	return m.updateFn(ctx, set)
}

func (m *mockCardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockCardSetStore) FailStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.failStalePending(ctx, cutoff)
}

func (m *mockCardSetStore) WithTx(tx *sql.Tx) store.CardSetStore { return m }

// mockGenerator implements generation.Generator with a function field.
type mockGenerator struct {
	generateFn func(ctx context.Context, notes string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, notes string) (string, error) {
	return m.generateFn(ctx, notes)
}

// mockVerifier implements auth.PasswordVerifier with a function field.
type mockVerifier struct {
	compareFn func(hashedPassword, password string) error
}

func (m *mockVerifier) Compare(hashedPassword, password string) error {
	return m.compareFn(hashedPassword, password)
}
