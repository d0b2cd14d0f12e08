package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// maxAmount is the largest value NUMERIC(12,2) can hold.
var maxAmount = decimal.RequireFromString("9999999999.99")

// AddExpenseInput is the raw expense form. Every field is required.
type AddExpenseInput struct {
	TripID   uuid.UUID
	Amount   *decimal.Decimal
	Category string
	Date     *time.Time
}

// ExpenseService implements the expense ledger of a trip.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Add validates the form, checks the caller owns the trip, and records the
// expense. The amount is rounded to cents.
func (s *ExpenseService) Add(ctx context.Context, ownerID uuid.UUID, in AddExpenseInput) (domain.Expense, error) {
	expense, err := validateExpense(in)
	if err != nil {
		return domain.Expense{}, err
	}

	if _, err := ownedTrip(ctx, s.trips, ownerID, in.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}

	created, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}
	return created, nil
}

// Remove deletes an expense of an owned trip.
// Returns domain.ErrNotFound if the expense is not recorded against that trip.
func (s *ExpenseService) Remove(ctx context.Context, ownerID, tripID, expenseID uuid.UUID) error {
	if tripID == uuid.Nil || expenseID == uuid.Nil {
		return fmt.Errorf("%w: tripId and expenseId are required", domain.ErrValidation)
	}

	if _, err := ownedTrip(ctx, s.trips, ownerID, tripID); err != nil {
		return fmt.Errorf("service.ExpenseService.Remove: %w", err)
	}

	err := s.expenses.Delete(ctx, tripID, expenseID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: expense not found", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Remove: %w", err)
	}
	return nil
}

// List returns the expenses of an owned trip ordered by date, then creation.
func (s *ExpenseService) List(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.Expense, error) {
	if _, err := ownedTrip(ctx, s.trips, ownerID, tripID); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	return expenses, nil
}

// validateExpense enforces the expense form rules.
//   - Amount, type, date, and trip id are required.
//   - Amount, after rounding to cents, must be positive and fit NUMERIC(12,2).
func validateExpense(in AddExpenseInput) (domain.Expense, error) {
	if in.TripID == uuid.Nil || in.Amount == nil || in.Date == nil || !requireFields(in.Category) {
		return domain.Expense{}, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	amount := in.Amount.Round(2)
	if !amount.IsPositive() {
		return domain.Expense{}, fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
	}
	if amount.GreaterThan(maxAmount) {
		return domain.Expense{}, fmt.Errorf("%w: amount is too large", domain.ErrValidation)
	}

	category := domain.NormalizeCategory(in.Category)
	if category == "" {
		return domain.Expense{}, fmt.Errorf("%w: type must contain letters or digits", domain.ErrValidation)
	}

	return domain.Expense{
		TripID:   in.TripID,
		Amount:   amount,
		Category: category,
		Date:     domain.CivilDate(*in.Date),
	}, nil
}
