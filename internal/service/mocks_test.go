package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.
// Calling an unset field panics, which flags an unexpected repo call.

type mockUserRepo struct {
	create          func(ctx context.Context, user domain.User) (domain.User, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByUsername   func(ctx context.Context, username string) (domain.User, error)
	getByEmail      func(ctx context.Context, email string) (domain.User, error)
	getByIdentifier func(ctx context.Context, identifier string) (domain.User, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	return m.getByIdentifier(ctx, identifier)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUserPaged func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	listIDsByUser   func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByUserPaged(ctx, userID, p)
}
func (m *mockTripRepo) ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.listIDsByUser(ctx, userID)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockDayRepo struct {
	createForTrip func(ctx context.Context, tripID uuid.UUID, dates []time.Time) ([]domain.ItineraryDay, error)
	listByTrip    func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryDay, error)
	getByID       func(ctx context.Context, tripID, dayID uuid.UUID) (domain.ItineraryDay, error)
	deleteByTrip  func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

func (m *mockDayRepo) CreateForTrip(ctx context.Context, tripID uuid.UUID, dates []time.Time) ([]domain.ItineraryDay, error) {
	return m.createForTrip(ctx, tripID, dates)
}
func (m *mockDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryDay, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDayRepo) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.ItineraryDay, error) {
	return m.getByID(ctx, tripID, dayID)
}
func (m *mockDayRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.deleteByTrip(ctx, tripID)
}

type mockActivityRepo struct {
	create       func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTrip   func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	delete       func(ctx context.Context, dayID, activityID uuid.UUID) error
	deleteByTrip func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockActivityRepo) Delete(ctx context.Context, dayID, activityID uuid.UUID) error {
	return m.delete(ctx, dayID, activityID)
}
func (m *mockActivityRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.deleteByTrip(ctx, tripID)
}

type mockExpenseRepo struct {
	create       func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	listByTrip   func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
	deleteByTrip func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}
func (m *mockExpenseRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.deleteByTrip(ctx, tripID)
}

// fakeTx runs fn against a fixed set of repos and records whether the unit of
// work returned an error, standing in for commit/rollback.
type fakeTx struct {
	repos      repo.Repos
	calls      int
	rolledBack bool
}

func (f *fakeTx) WithinTx(_ context.Context, fn func(repo.Repos) error) error {
	f.calls++
	err := fn(f.repos)
	f.rolledBack = err != nil
	return err
}

// compile-time checks: every mock must satisfy its repo interface.
var (
	_ repo.UserRepo     = (*mockUserRepo)(nil)
	_ repo.TripRepo     = (*mockTripRepo)(nil)
	_ repo.DayRepo      = (*mockDayRepo)(nil)
	_ repo.ActivityRepo = (*mockActivityRepo)(nil)
	_ repo.ExpenseRepo  = (*mockExpenseRepo)(nil)
	_ repo.TxRunner     = (*fakeTx)(nil)
)

// ---- shared fixtures -------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ownedTripRepo returns a trip repo whose GetByID yields a trip owned by owner
// for tripID and ErrNotFound for anything else.
func ownedTripRepo(owner, tripID uuid.UUID) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != tripID {
				return domain.Trip{}, domain.ErrNotFound
			}
			return domain.Trip{ID: tripID, UserID: owner, Title: "Lisbon Getaway", Destination: "Lisbon"}, nil
		},
	}
}
