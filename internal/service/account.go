package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// MinPasswordLength is the shortest password Signup accepts.
const MinPasswordLength = 8

// maxPasswordBytes matches bcrypt's input limit.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords. auth.BcryptHasher satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// SignupInput is the raw registration form. Every field is required.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// AccountService implements registration, login, and administrative
// account removal.
type AccountService struct {
	users  repo.UserRepo
	tx     repo.TxRunner
	hasher PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService constructs an AccountService. tx is used by DeleteUser,
// which must remove the user and all owned trips atomically.
func NewAccountService(users repo.UserRepo, tx repo.TxRunner, hasher PasswordHasher) *AccountService {
	return &AccountService{users: users, tx: tx, hasher: hasher}
}

// Signup validates the form, hashes the password, and stores the user.
// Returns domain.ErrValidation for bad input and domain.ErrConflict when the
// username or email is taken. The returned user has no password hash.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	if !requireFields(in.Username, in.Email, in.Password, in.ConfirmPassword, in.FirstName, in.LastName) {
		return domain.User{}, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if in.Password != in.ConfirmPassword {
		return domain.User{}, fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	username := normalizeIdentifier(in.Username)
	email := normalizeIdentifier(in.Email)
	if err := validateAccount(username, email, in.Password); err != nil {
		return domain.User{}, err
	}

	// The unique indexes are the final arbiter; these lookups only fix the
	// order in which conflicts are reported.
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, fmt.Errorf("%w: username already exists", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, fmt.Errorf("%w: email already exists", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Signup: %w", err)
	}
	return created.Public(), nil
}

// Authenticate checks identifier (username or email) and password.
// Every failure that is the caller's fault returns domain.ErrInvalidCredentials,
// so the response does not reveal whether the account exists.
func (s *AccountService) Authenticate(ctx context.Context, identifier, password string) (domain.User, error) {
	if !requireFields(identifier, password) {
		return domain.User{}, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	user, err := s.users.GetByIdentifier(ctx, normalizeIdentifier(identifier))
	if errors.Is(err, domain.ErrNotFound) {
		// Burn a comparison so unknown identifiers take as long as wrong passwords.
		_, _ = s.hasher.Verify(password, s.dummy())
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Authenticate: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.Authenticate: %w", err)
	}
	if !ok {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user.Public(), nil
}

// GetByID returns the public view of a user.
func (s *AccountService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: user not found", domain.ErrNotFound)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AccountService.GetByID: %w", err)
	}
	return user.Public(), nil
}

// DeleteUser removes a user and every trip they own, in one transaction.
// It returns the number of trips removed.
func (s *AccountService) DeleteUser(ctx context.Context, username string) (int, error) {
	username = normalizeIdentifier(username)
	if username == "" {
		return 0, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}

	var removed int
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		user, err := r.Users.GetByUsername(ctx, username)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		if err != nil {
			return err
		}

		tripIDs, err := r.Trips.ListIDsByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, id := range tripIDs {
			if err := cascadeDeleteTrip(ctx, r, id); err != nil {
				return fmt.Errorf("trip %s: %w", id, err)
			}
		}
		if err := r.Users.Delete(ctx, user.ID); err != nil {
			return err
		}
		removed = len(tripIDs)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("service.AccountService.DeleteUser: %w", err)
	}
	return removed, nil
}

// dummy returns a hash of a throwaway password, computed once.
func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validateAccount enforces the rules on already-normalized signup fields.
//   - Username may not contain "@" or whitespace, so it never collides with an email.
//   - Email must parse as a bare address.
//   - Password length is between MinPasswordLength and bcrypt's 72-byte limit.
func validateAccount(username, email, password string) error {
	if strings.ContainsAny(username, "@ \t\r\n") {
		return fmt.Errorf("%w: username must not contain '@' or spaces", domain.ErrValidation)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	return nil
}
