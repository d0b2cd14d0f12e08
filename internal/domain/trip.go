// Package domain contains the core data types for the trip planner.
// This package depends only on uuid and decimal and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTripDays bounds the inclusive start..end range of a single trip.
const MaxTripDays = 366

// Trip is the aggregate root: it owns its itinerary days and expenses, and
// belongs to exactly one user.
type Trip struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Title          string
	Destination    string
	DestinationLat float64
	DestinationLng float64
	StartDate      time.Time
	EndDate        time.Time
	// Itinerary is populated by Create and Get, ordered by date. List leaves it nil.
	Itinerary []ItineraryDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidCoordinates reports whether lat/lng fall within WGS84 bounds.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
