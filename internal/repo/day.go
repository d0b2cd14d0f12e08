package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DayRepo defines the persistence operations for itinerary days.
// Days only ever exist under a trip, so every lookup is scoped by tripID.
type DayRepo interface {
	// CreateForTrip inserts one day per date, with positions in slice order,
	// and returns them ordered by position.
	CreateForTrip(ctx context.Context, tripID uuid.UUID, dates []time.Time) ([]domain.ItineraryDay, error)

	// ListByTrip returns a trip's days ordered by date. Activities are not loaded.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryDay, error)

	// GetByID returns domain.ErrNotFound unless dayID is one of tripID's days.
	GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.ItineraryDay, error)

	// DeleteByTrip removes every day of a trip and reports how many were removed.
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

func (r *pgDayRepo) CreateForTrip(ctx context.Context, tripID uuid.UUID, dates []time.Time) ([]domain.ItineraryDay, error) {
	if len(dates) == 0 {
		return []domain.ItineraryDay{}, nil
	}

	const q = `
		INSERT INTO itinerary_days (trip_id, day_date, position)
		SELECT @trip_id, d.day_date, d.ord - 1
		FROM unnest(@dates::text[]::date[]) WITH ORDINALITY AS d(day_date, ord)
		RETURNING id, trip_id, day_date, position`

	// Dates travel as ISO strings so the session time zone cannot shift them.
	isoDates := make([]string, len(dates))
	for i, d := range dates {
		isoDates[i] = d.Format(domain.DateLayout)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "dates": isoDates})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.CreateForTrip: %w", err)
	}
	days, err := collect(rows, scanDay)
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.CreateForTrip: %w", err)
	}
	// RETURNING order is not guaranteed.
	sort.Slice(days, func(i, j int) bool { return days[i].Position < days[j].Position })
	return days, nil
}

func (r *pgDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryDay, error) {
	const q = `
		SELECT id, trip_id, day_date, position
		FROM itinerary_days
		WHERE trip_id = @trip_id
		ORDER BY day_date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	days, err := collect(rows, scanDay)
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	return days, nil
}

func (r *pgDayRepo) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.ItineraryDay, error) {
	const q = `
		SELECT id, trip_id, day_date, position
		FROM itinerary_days
		WHERE id = @id AND trip_id = @trip_id`

	day, err := scanDay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": dayID, "trip_id": tripID}))
	if err != nil {
		return domain.ItineraryDay{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	return day, nil
}

func (r *pgDayRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM itinerary_days WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.DayRepo.DeleteByTrip: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanDay(s scanner) (domain.ItineraryDay, error) {
	var (
		d      domain.ItineraryDay
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
		pos    int32
	)
	if err := s.Scan(&id, &tripID, &date, &pos); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryDay{}, domain.ErrNotFound
		}
		return domain.ItineraryDay{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.Date = date.Time
	d.Position = int(pos)
	return d, nil
}
