package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// timeOfDay matches a 24-hour "HH:MM" clock time.
var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// errDayNotInTrip is returned when a day id is not one of the trip's days.
var errDayNotInTrip = fmt.Errorf("%w: day does not belong to this trip", domain.ErrValidation)

// AddActivityInput is the raw activity form. Time and Description are optional.
type AddActivityInput struct {
	TripID      uuid.UUID
	DayID       uuid.UUID
	Title       string
	Category    string
	Time        string
	Description string
	Lat         *float64
	Lng         *float64
}

// ItineraryService implements the day/activity subtree of a trip.
// It holds the trips repo because every operation starts with an ownership check.
type ItineraryService struct {
	trips      repo.TripRepo
	days       repo.DayRepo
	activities repo.ActivityRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(trips repo.TripRepo, days repo.DayRepo, activities repo.ActivityRepo) *ItineraryService {
	return &ItineraryService{trips: trips, days: days, activities: activities}
}

// List returns the trip's days ordered by date, each carrying its activities
// ordered by time of day with untimed activities last.
// Always returns a non-nil slice, and every day has a non-nil Activities slice.
func (s *ItineraryService) List(ctx context.Context, ownerID, tripID uuid.UUID) ([]domain.ItineraryDay, error) {
	if _, err := ownedTrip(ctx, s.trips, ownerID, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}

	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	activities, err := s.activities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}

	byDay := make(map[uuid.UUID][]domain.Activity, len(days))
	for _, a := range activities {
		byDay[a.DayID] = append(byDay[a.DayID], a)
	}
	out := make([]domain.ItineraryDay, len(days))
	for i, d := range days {
		d.Activities = byDay[d.ID]
		if d.Activities == nil {
			d.Activities = []domain.Activity{}
		}
		out[i] = d
	}
	return out, nil
}

// AddActivity validates the form, checks the caller owns the trip and that
// the day belongs to it, then stores the activity. Nothing is written when
// any check fails.
func (s *ItineraryService) AddActivity(ctx context.Context, ownerID uuid.UUID, in AddActivityInput) (domain.Activity, error) {
	activity, err := validateActivity(in)
	if err != nil {
		return domain.Activity{}, err
	}

	if err := s.checkDay(ctx, ownerID, in.TripID, in.DayID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ItineraryService.AddActivity: %w", err)
	}

	created, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ItineraryService.AddActivity: %w", err)
	}
	return created, nil
}

// RemoveActivity deletes an activity from a day of an owned trip.
// Returns domain.ErrNotFound if the activity is not on that day.
func (s *ItineraryService) RemoveActivity(ctx context.Context, ownerID, tripID, dayID, activityID uuid.UUID) error {
	if tripID == uuid.Nil || dayID == uuid.Nil || activityID == uuid.Nil {
		return fmt.Errorf("%w: tripId, dayId and activityId are required", domain.ErrValidation)
	}

	if err := s.checkDay(ctx, ownerID, tripID, dayID); err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveActivity: %w", err)
	}

	err := s.activities.Delete(ctx, dayID, activityID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: activity not found", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("service.ItineraryService.RemoveActivity: %w", err)
	}
	return nil
}

// checkDay verifies ownership of the trip and membership of the day.
func (s *ItineraryService) checkDay(ctx context.Context, ownerID, tripID, dayID uuid.UUID) error {
	if _, err := ownedTrip(ctx, s.trips, ownerID, tripID); err != nil {
		return err
	}
	_, err := s.days.GetByID(ctx, tripID, dayID)
	if errors.Is(err, domain.ErrNotFound) {
		return errDayNotInTrip
	}
	return err
}

// validateActivity enforces the activity form rules and returns the activity
// to insert.
func validateActivity(in AddActivityInput) (domain.Activity, error) {
	if !requireFields(in.Title, in.Category) || in.Lat == nil || in.Lng == nil ||
		in.TripID == uuid.Nil || in.DayID == uuid.Nil {
		return domain.Activity{}, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if !domain.ValidCoordinates(*in.Lat, *in.Lng) {
		return domain.Activity{}, fmt.Errorf("%w: location coordinates are out of range", domain.ErrValidation)
	}

	at := strings.TrimSpace(in.Time)
	if at != "" && !timeOfDay.MatchString(at) {
		return domain.Activity{}, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}

	category := domain.NormalizeCategory(in.Category)
	if category == "" {
		return domain.Activity{}, fmt.Errorf("%w: type must contain letters or digits", domain.ErrValidation)
	}

	return domain.Activity{
		DayID:       in.DayID,
		Title:       strings.TrimSpace(in.Title),
		Time:        at,
		Description: strings.TrimSpace(in.Description),
		Lat:         *in.Lat,
		Lng:         *in.Lng,
		Category:    category,
	}, nil
}
