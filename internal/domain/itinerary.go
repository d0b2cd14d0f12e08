package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryDay is one calendar day of a trip. Days are created with the trip
// and deleted with it; they are never created or removed on their own.
type ItineraryDay struct {
	ID       uuid.UUID
	TripID   uuid.UUID
	Date     time.Time
	Position int
	// Activities is ordered by time of day, untimed activities last.
	Activities []Activity
}

// Activity is a planned item on an itinerary day.
// Time is "HH:MM" (24h) or empty when the activity has no fixed time.
type Activity struct {
	ID          uuid.UUID
	DayID       uuid.UUID
	Title       string
	Time        string
	Description string
	Lat         float64
	Lng         float64
	Category    string
	CreatedAt   time.Time
}
