package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ownedTrip loads a trip and checks that ownerID owns it.
// Returns domain.ErrNotFound if the trip does not exist and
// domain.ErrForbidden if it belongs to another user.
func ownedTrip(ctx context.Context, trips repo.TripRepo, ownerID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := trips.GetByID(ctx, tripID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, fmt.Errorf("%w: trip not found", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != ownerID {
		return domain.Trip{}, fmt.Errorf("%w: trip belongs to another user", domain.ErrForbidden)
	}
	return trip, nil
}

// cascadeDeleteTrip removes a trip and everything hanging off it, children
// first: activities, itinerary days, expenses, then the trip row.
// r must be bound to a transaction so a failure leaves nothing half-deleted.
func cascadeDeleteTrip(ctx context.Context, r repo.Repos, tripID uuid.UUID) error {
	if _, err := r.Activities.DeleteByTrip(ctx, tripID); err != nil {
		return fmt.Errorf("activities: %w", err)
	}
	if _, err := r.Days.DeleteByTrip(ctx, tripID); err != nil {
		return fmt.Errorf("itinerary days: %w", err)
	}
	if _, err := r.Expenses.DeleteByTrip(ctx, tripID); err != nil {
		return fmt.Errorf("expenses: %w", err)
	}
	if err := r.Trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("trip: %w", err)
	}
	return nil
}

// requireFields reports whether every value is non-blank.
func requireFields(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
