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

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated). Itinerary days are not touched.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key, regardless of owner.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUserPaged returns one page of a user's trips ordered by start_date
	// descending, plus the user's total trip count.
	ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// ListIDsByUser returns the ids of every trip the user owns.
	ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// Delete removes a trip row. Returns domain.ErrNotFound if it does not exist.
	// Child rows must already be gone; the foreign keys do not cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, title, destination, destination_lat, destination_lng,
		start_date, end_date, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, title, destination, destination_lat, destination_lng, start_date, end_date)
		VALUES (@user_id, @title, @destination, @destination_lat, @destination_lng, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":         trip.UserID,
		"title":           trip.Title,
		"destination":     trip.Destination,
		"destination_lat": trip.DestinationLat,
		"destination_lng": trip.DestinationLng,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUserPaged returns one page of the user's trips, most recent start first.
func (r *pgTripRepo) ListByUserPaged(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUserPaged: count: %w", err)
	}

	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUserPaged: %w", err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUserPaged: %w", err)
	}
	return trips, total, nil
}

// ListIDsByUser returns every trip id owned by userID.
func (r *pgTripRepo) ListIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM trips WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListIDsByUser: %w", err)
	}
	ids, err := collect(rows, func(s scanner) (uuid.UUID, error) {
		var id pgtype.UUID
		if err := s.Scan(&id); err != nil {
			return uuid.Nil, err
		}
		return uuid.UUID(id.Bytes), nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListIDsByUser: %w", err)
	}
	return ids, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and DATE conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		userID    pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &userID, &t.Title, &t.Destination, &t.DestinationLat, &t.DestinationLng,
		&startDate, &endDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	return t, nil
}
