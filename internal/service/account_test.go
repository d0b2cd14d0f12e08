package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// fakeHasher "hashes" by prefixing, and counts Verify calls.
type fakeHasher struct {
	verifies int
}

func (h *fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (h *fakeHasher) Verify(password, hash string) (bool, error) {
	h.verifies++
	return hash == "hashed:"+password, nil
}

func validSignup() service.SignupInput {
	return service.SignupInput{
		Username:        "  Ada ",
		Email:           "Ada@Example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
		FirstName:       "Ada",
		LastName:        "Lovelace",
	}
}

// freshUsers is a user repo where every lookup misses and Create echoes.
func freshUsers() *mockUserRepo {
	return &mockUserRepo{
		getByUsername: func(context.Context, string) (domain.User, error) { return domain.User{}, domain.ErrNotFound },
		getByEmail:    func(context.Context, string) (domain.User, error) { return domain.User{}, domain.ErrNotFound },
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			u.ID = uuid.New()
			return u, nil
		},
	}
}

// ---- Signup ----------------------------------------------------------------

func TestAccountService_Signup_Valid(t *testing.T) {
	var stored domain.User
	users := freshUsers()
	users.create = func(_ context.Context, u domain.User) (domain.User, error) {
		stored = u
		u.ID = uuid.New()
		return u, nil
	}
	svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})

	got, err := svc.Signup(context.Background(), validSignup())

	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username, "username is trimmed and lower-cased")
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Empty(t, got.PasswordHash, "hash must not leave the service")
	assert.Equal(t, "hashed:correct horse", stored.PasswordHash, "only the hash is stored")
}

func TestAccountService_Signup_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*service.SignupInput)
		msg    string
	}{
		{"missing first name", func(in *service.SignupInput) { in.FirstName = "" }, "all fields are required"},
		{"whitespace username", func(in *service.SignupInput) { in.Username = "   " }, "all fields are required"},
		{"mismatched confirm", func(in *service.SignupInput) { in.ConfirmPassword = "correct horsE" }, "passwords do not match"},
		{"short password", func(in *service.SignupInput) { in.Password, in.ConfirmPassword = "short", "short" }, "at least 8"},
		{"bad email", func(in *service.SignupInput) { in.Email = "not-an-email" }, "email is not a valid address"},
		{"username with at sign", func(in *service.SignupInput) { in.Username = "ada@home" }, "must not contain"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// An empty mock: any repo call would panic.
			svc := service.NewAccountService(&mockUserRepo{}, &fakeTx{}, &fakeHasher{})
			in := validSignup()
			tc.mutate(&in)

			_, err := svc.Signup(context.Background(), in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestAccountService_Signup_DuplicateUsername(t *testing.T) {
	users := freshUsers()
	users.getByUsername = func(_ context.Context, username string) (domain.User, error) {
		return domain.User{Username: username}, nil
	}
	svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})

	_, err := svc.Signup(context.Background(), validSignup())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestAccountService_Signup_DuplicateEmail(t *testing.T) {
	users := freshUsers()
	users.getByEmail = func(_ context.Context, email string) (domain.User, error) {
		return domain.User{Email: email}, nil
	}
	svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})

	_, err := svc.Signup(context.Background(), validSignup())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "email already exists")
}

func TestAccountService_Signup_RacingInsertConflict(t *testing.T) {
	users := freshUsers()
	users.create = func(context.Context, domain.User) (domain.User, error) {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w: username already exists", domain.ErrConflict)
	}
	svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})

	_, err := svc.Signup(context.Background(), validSignup())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- Authenticate ----------------------------------------------------------

func TestAccountService_Authenticate(t *testing.T) {
	stored := domain.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com", PasswordHash: "hashed:correct horse"}
	var looked string
	users := &mockUserRepo{
		getByIdentifier: func(_ context.Context, identifier string) (domain.User, error) {
			looked = identifier
			if identifier == stored.Username || identifier == stored.Email {
				return stored, nil
			}
			return domain.User{}, domain.ErrNotFound
		},
	}

	t.Run("by username", func(t *testing.T) {
		svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})
		got, err := svc.Authenticate(context.Background(), " ADA ", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "ada", looked, "identifier is normalized before lookup")
		assert.Equal(t, stored.ID, got.ID)
		assert.Empty(t, got.PasswordHash)
	})

	t.Run("by email", func(t *testing.T) {
		svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})
		_, err := svc.Authenticate(context.Background(), "ada@example.com", "correct horse")
		require.NoError(t, err)
	})

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		hasher := &fakeHasher{}
		svc := service.NewAccountService(users, &fakeTx{}, hasher)

		_, wrongPw := svc.Authenticate(context.Background(), "ada", "battery staple")
		_, unknown := svc.Authenticate(context.Background(), "grace", "battery staple")

		assert.ErrorIs(t, wrongPw, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, domain.ErrInvalidCredentials)
		assert.Equal(t, wrongPw.Error(), unknown.Error())
		assert.Equal(t, 2, hasher.verifies, "unknown identifiers still pay for a comparison")
	})
}

// ---- DeleteUser ------------------------------------------------------------

func TestAccountService_DeleteUser_CascadesOwnedTrips(t *testing.T) {
	userID := uuid.New()
	tripA, tripB := uuid.New(), uuid.New()
	var order []string

	tx := &fakeTx{repos: repo.Repos{
		Users: &mockUserRepo{
			getByUsername: func(_ context.Context, username string) (domain.User, error) {
				assert.Equal(t, "ada", username)
				return domain.User{ID: userID, Username: username}, nil
			},
			delete: func(_ context.Context, id uuid.UUID) error {
				assert.Equal(t, userID, id)
				order = append(order, "user")
				return nil
			},
		},
		Trips: &mockTripRepo{
			listIDsByUser: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
				return []uuid.UUID{tripA, tripB}, nil
			},
			delete: func(_ context.Context, id uuid.UUID) error {
				order = append(order, "trip:"+id.String())
				return nil
			},
		},
		Activities: &mockActivityRepo{deleteByTrip: func(context.Context, uuid.UUID) (int64, error) {
			order = append(order, "activities")
			return 0, nil
		}},
		Days: &mockDayRepo{deleteByTrip: func(context.Context, uuid.UUID) (int64, error) {
			order = append(order, "days")
			return 0, nil
		}},
		Expenses: &mockExpenseRepo{deleteByTrip: func(context.Context, uuid.UUID) (int64, error) {
			order = append(order, "expenses")
			return 0, nil
		}},
	}}
	svc := service.NewAccountService(&mockUserRepo{}, tx, &fakeHasher{})

	n, err := svc.DeleteUser(context.Background(), " Ada ")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, tx.calls, "everything runs in one transaction")
	assert.Equal(t, []string{
		"activities", "days", "expenses", "trip:" + tripA.String(),
		"activities", "days", "expenses", "trip:" + tripB.String(),
		"user",
	}, order)
}

func TestAccountService_DeleteUser_NotFound(t *testing.T) {
	tx := &fakeTx{repos: repo.Repos{
		Users: &mockUserRepo{getByUsername: func(context.Context, string) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		}},
	}}
	svc := service.NewAccountService(&mockUserRepo{}, tx, &fakeHasher{})

	_, err := svc.DeleteUser(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "user not found")
}

func TestAccountService_DeleteUser_FailureRollsBack(t *testing.T) {
	boom := errors.New("boom")
	tx := &fakeTx{repos: repo.Repos{
		Users: &mockUserRepo{getByUsername: func(context.Context, string) (domain.User, error) {
			return domain.User{ID: uuid.New()}, nil
		}},
		Trips: &mockTripRepo{listIDsByUser: func(context.Context, uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{uuid.New()}, nil
		}},
		Activities: &mockActivityRepo{deleteByTrip: func(context.Context, uuid.UUID) (int64, error) {
			return 0, boom
		}},
	}}
	svc := service.NewAccountService(&mockUserRepo{}, tx, &fakeHasher{})

	_, err := svc.DeleteUser(context.Background(), "ada")

	assert.ErrorIs(t, err, boom)
	assert.True(t, tx.rolledBack)
}

// ---- GetByID ---------------------------------------------------------------

func TestAccountService_GetByID(t *testing.T) {
	id := uuid.New()
	users := &mockUserRepo{getByID: func(_ context.Context, got uuid.UUID) (domain.User, error) {
		if got != id {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{ID: id, Username: "ada", PasswordHash: "secret"}, nil
	}}
	svc := service.NewAccountService(users, &fakeTx{}, &fakeHasher{})

	u, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
