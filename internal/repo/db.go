// Package repo contains all database access logic for the trip planner.
// Each entity has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txBeginner is satisfied by *pgxpool.Pool and by pgx.Tx (which nests via savepoints).
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Users      UserRepo
	Trips      TripRepo
	Days       DayRepo
	Activities ActivityRepo
	Expenses   ExpenseRepo
}

// NewRepos binds all repositories to db.
func NewRepos(db db) Repos {
	return Repos{
		Users:      NewUserRepo(db),
		Trips:      NewTripRepo(db),
		Days:       NewDayRepo(db),
		Activities: NewActivityRepo(db),
		Expenses:   NewExpenseRepo(db),
	}
}

// TxRunner runs a unit of work atomically. fn receives repositories bound to
// the transaction; returning an error from fn rolls everything back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

// pgTxRunner is the Postgres implementation of TxRunner.
type pgTxRunner struct {
	db txBeginner
}

// NewTxRunner constructs a TxRunner over a pool, or over an outer pgx.Tx in tests.
func NewTxRunner(db txBeginner) TxRunner {
	return &pgTxRunner{db: db}
}

func (r *pgTxRunner) WithinTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner.WithinTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner.WithinTx: commit: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// collect drains rows through scan. It always returns a non-nil slice on success.
func collect[T any](rows pgx.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

const uniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name if err is a unique violation.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// nullableText maps "" to SQL NULL.
func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
