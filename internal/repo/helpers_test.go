package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/testutil"
)

func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// newTestRepos binds every repository to a rolled-back test transaction.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return repo.NewRepos(newTestTx(t))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// userFixture returns a user whose username and email are unique per call.
func userFixture() domain.User {
	suffix := uuid.NewString()[:8]
	return domain.User{
		Username:     "traveler" + suffix,
		Email:        "traveler" + suffix + "@example.com",
		PasswordHash: "$2a$10$notarealhashbutlongenoughforthecolumn",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
}

// tripFixture returns a three-day Lisbon trip owned by userID.
func tripFixture(userID uuid.UUID) domain.Trip {
	return domain.Trip{
		UserID:         userID,
		Title:          "Lisbon Getaway",
		Destination:    "Lisbon, Portugal",
		DestinationLat: 38.7223,
		DestinationLng: -9.1393,
		StartDate:      date(2025, 6, 1),
		EndDate:        date(2025, 6, 3),
	}
}

// seedTrip inserts a user, a trip, and the trip's days.
func seedTrip(t *testing.T, repos repo.Repos) (domain.User, domain.Trip, []domain.ItineraryDay) {
	t.Helper()
	ctx := context.Background()

	user, err := repos.Users.Create(ctx, userFixture())
	require.NoError(t, err)

	trip, err := repos.Trips.Create(ctx, tripFixture(user.ID))
	require.NoError(t, err)

	days, err := repos.Days.CreateForTrip(ctx, trip.ID, domain.DaysInRange(trip.StartDate, trip.EndDate))
	require.NoError(t, err)
	return user, trip, days
}
