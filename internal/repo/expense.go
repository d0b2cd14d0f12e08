package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ExpenseRepo defines the persistence operations for expenses.
// Amounts cross the wire as text so NUMERIC precision is never routed through float64.
type ExpenseRepo interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// ListByTrip returns a trip's expenses ordered by date, then creation time.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Delete removes an expense only if it belongs to tripID.
	// Returns domain.ErrNotFound otherwise.
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error

	DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, amount::text, category, expense_date, created_at`

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, amount, category, expense_date)
		VALUES (@trip_id, @amount::text::numeric, @category, @expense_date)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"trip_id":      expense.TripID,
		"amount":       expense.Amount.StringFixed(2),
		"category":     expense.Category,
		"expense_date": expense.Date,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY expense_date, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", err)
	}
	expenses, err := collect(rows, scanExpense)
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", err)
	}
	return expenses, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExpenseRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.DeleteByTrip: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e      domain.Expense
		id     pgtype.UUID
		tripID pgtype.UUID
		amount string
		date   pgtype.Date
	)
	if err := s.Scan(&id, &tripID, &amount, &e.Category, &date, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Amount = parsed
	e.Date = date.Time
	return e, nil
}
