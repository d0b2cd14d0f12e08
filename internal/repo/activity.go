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

// ActivityRepo defines the persistence operations for activities.
type ActivityRepo interface {
	// Create inserts an activity under activity.DayID.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// ListByTrip returns every activity of a trip ordered by day, then time of
	// day with untimed activities last, then creation time.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Delete removes an activity only if it belongs to dayID.
	// Returns domain.ErrNotFound otherwise.
	Delete(ctx context.Context, dayID, activityID uuid.UUID) error

	// DeleteByTrip removes every activity on any of the trip's days.
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `a.id, a.day_id, a.title, a.time_of_day, a.description, a.lat, a.lng, a.category, a.created_at`

func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities AS a (day_id, title, time_of_day, description, lat, lng, category)
		VALUES (@day_id, @title, @time_of_day, @description, @lat, @lng, @category)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"day_id":      activity.DayID,
		"title":       activity.Title,
		"time_of_day": nullableText(activity.Time),
		"description": activity.Description,
		"lat":         activity.Lat,
		"lng":         activity.Lng,
		"category":    activity.Category,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN itinerary_days d ON d.id = a.day_id
		WHERE d.trip_id = @trip_id
		ORDER BY d.day_date, a.time_of_day NULLS LAST, a.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: %w", err)
	}
	activities, err := collect(rows, scanActivity)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: %w", err)
	}
	return activities, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, dayID, activityID uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id AND day_id = @day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": activityID, "day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	const q = `
		DELETE FROM activities a
		USING itinerary_days d
		WHERE a.day_id = d.id AND d.trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.ActivityRepo.DeleteByTrip: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a         domain.Activity
		id        pgtype.UUID
		dayID     pgtype.UUID
		timeOfDay pgtype.Text
	)
	err := s.Scan(&id, &dayID, &a.Title, &timeOfDay, &a.Description, &a.Lat, &a.Lng, &a.Category, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.DayID = uuid.UUID(dayID.Bytes)
	a.Time = timeOfDay.String
	return a, nil
}
