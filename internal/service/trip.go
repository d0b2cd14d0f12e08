// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce ownership, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// TripDeletedMessage confirms a successful cascade delete.
const TripDeletedMessage = "Trip and all associated data deleted."

// CreateTripInput is the raw trip form. Pointer fields distinguish
// "absent" from a legitimate zero such as latitude 0.
type CreateTripInput struct {
	Title          string
	Destination    string
	DestinationLat *float64
	DestinationLng *float64
	StartDate      *time.Time
	EndDate        *time.Time
}

// TripService implements business logic for the trip aggregate.
type TripService struct {
	trips repo.TripRepo
	days  repo.DayRepo
	tx    repo.TxRunner
}

// NewTripService constructs a TripService. Reads go through trips and days;
// Create and Delete run inside tx.
func NewTripService(trips repo.TripRepo, days repo.DayRepo, tx repo.TxRunner) *TripService {
	return &TripService{trips: trips, days: days, tx: tx}
}

// Create validates the form and, in one transaction, inserts the trip and one
// itinerary day per calendar day from start to end inclusive.
// Returns domain.ErrValidation for bad input and domain.ErrNotFound if the
// owner no longer exists.
func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, in CreateTripInput) (domain.Trip, error) {
	trip, err := validateTrip(ownerID, in)
	if err != nil {
		return domain.Trip{}, err
	}

	var created domain.Trip
	err = s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if _, err := r.Users.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: user not found", domain.ErrNotFound)
			}
			return err
		}

		t, err := r.Trips.Create(ctx, trip)
		if err != nil {
			return err
		}
		days, err := r.Days.CreateForTrip(ctx, t.ID, domain.DaysInRange(trip.StartDate, trip.EndDate))
		if err != nil {
			return err
		}
		t.Itinerary = days
		created = t
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// List returns one page of the owner's trips, most recent start date first.
// Itineraries are not loaded.
func (s *TripService) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	trips, total, err := s.trips.ListByUserPaged(ctx, ownerID, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	return domain.Page[domain.Trip]{Items: trips, Total: total, Params: p}, nil
}

// Get returns a trip with its itinerary days ordered by date.
// Returns domain.ErrNotFound if absent and domain.ErrForbidden if the caller
// does not own it.
func (s *TripService) Get(ctx context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := ownedTrip(ctx, s.trips, ownerID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	trip.Itinerary, err = s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// Delete removes an owned trip with its days, activities, and expenses in one
// transaction.
func (s *TripService) Delete(ctx context.Context, ownerID, tripID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		if _, err := ownedTrip(ctx, r.Trips, ownerID, tripID); err != nil {
			return err
		}
		return cascadeDeleteTrip(ctx, r, tripID)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces the trip form rules and returns the trip to insert.
//   - All fields are required; whitespace-only strings count as missing.
//   - Coordinates must be valid WGS84.
//   - EndDate must not be before StartDate, and the range is capped at domain.MaxTripDays.
func validateTrip(ownerID uuid.UUID, in CreateTripInput) (domain.Trip, error) {
	if !requireFields(in.Title, in.Destination) ||
		in.DestinationLat == nil || in.DestinationLng == nil ||
		in.StartDate == nil || in.EndDate == nil {
		return domain.Trip{}, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if !domain.ValidCoordinates(*in.DestinationLat, *in.DestinationLng) {
		return domain.Trip{}, fmt.Errorf("%w: destination coordinates are out of range", domain.ErrValidation)
	}

	start, end := domain.CivilDate(*in.StartDate), domain.CivilDate(*in.EndDate)
	if end.Before(start) {
		return domain.Trip{}, fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	// Civil dates are UTC midnights, so the difference is a whole number of days.
	if int(end.Sub(start).Hours()/24)+1 > domain.MaxTripDays {
		return domain.Trip{}, fmt.Errorf("%w: a trip may span at most %d days", domain.ErrValidation, domain.MaxTripDays)
	}

	return domain.Trip{
		UserID:         ownerID,
		Title:          strings.TrimSpace(in.Title),
		Destination:    strings.TrimSpace(in.Destination),
		DestinationLat: *in.DestinationLat,
		DestinationLng: *in.DestinationLng,
		StartDate:      start,
		EndDate:        end,
	}, nil
}
