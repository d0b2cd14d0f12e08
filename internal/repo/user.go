package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
// Username and email are expected to be normalized by the caller.
type UserRepo interface {
	// Create inserts a user. A unique violation on username or email is
	// reported as domain.ErrConflict with a message naming the field.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that id.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByUsername returns domain.ErrNotFound if the username is unused.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// GetByEmail returns domain.ErrNotFound if the email is unused.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByIdentifier matches identifier against username or email.
	GetByIdentifier(ctx context.Context, identifier string) (domain.User, error)

	// Delete removes a user row. Owned trips must already be gone.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES (@username, @email, @password_hash, @first_name, @last_name)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			switch constraint {
			case "users_username_key":
				return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w: username already exists", domain.ErrConflict)
			case "users_email_key":
				return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w: email already exists", domain.ErrConflict)
			}
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username = @username`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	// Usernames cannot contain "@", so at most one row can match.
	q := `SELECT ` + userColumns + ` FROM users WHERE username = @identifier OR email = @identifier LIMIT 1`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"identifier": identifier}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByIdentifier: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	err := s.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
