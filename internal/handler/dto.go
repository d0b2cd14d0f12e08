package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Request and response bodies. JSON names are camelCase to match the web
// client; dates travel as "YYYY-MM-DD" via openapi_types.Date and money as a
// two-decimal string.

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

type createTripRequest struct {
	Title          string              `json:"title"`
	Destination    string              `json:"destination"`
	DestinationLat *float64            `json:"destinationLat"`
	DestinationLng *float64            `json:"destinationLng"`
	StartDate      *openapi_types.Date `json:"startDate"`
	EndDate        *openapi_types.Date `json:"endDate"`
}

type tripResponse struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Destination    string             `json:"destination"`
	DestinationLat float64            `json:"destinationLat"`
	DestinationLng float64            `json:"destinationLng"`
	StartDate      openapi_types.Date `json:"startDate"`
	EndDate        openapi_types.Date `json:"endDate"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// tripDetailResponse is a trip with its itinerary, which is always present
// (possibly empty) on single-trip responses and absent from list entries.
type tripDetailResponse struct {
	tripResponse
	Itinerary []dayResponse `json:"itinerary"`
}

type tripCreatedResponse struct {
	Message string             `json:"message"`
	Trip    tripDetailResponse `json:"trip"`
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:             t.ID,
		Title:          t.Title,
		Destination:    t.Destination,
		DestinationLat: t.DestinationLat,
		DestinationLng: t.DestinationLng,
		StartDate:      openapi_types.Date{Time: t.StartDate},
		EndDate:        openapi_types.Date{Time: t.EndDate},
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func tripToDetailResponse(t domain.Trip) tripDetailResponse {
	days := make([]dayResponse, len(t.Itinerary))
	for i, d := range t.Itinerary {
		days[i] = dayToResponse(d)
	}
	return tripDetailResponse{tripResponse: tripToResponse(t), Itinerary: days}
}

type location struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type addActivityRequest struct {
	TripID      string   `json:"tripId"`
	DayID       string   `json:"dayId"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Time        string   `json:"time"`
	Description string   `json:"description"`
	Location    location `json:"location"`
}

type removeActivityRequest struct {
	TripID     string `json:"tripId"`
	DayID      string `json:"dayId"`
	ActivityID string `json:"activityId"`
}

type coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type activityResponse struct {
	ID          uuid.UUID   `json:"id"`
	DayID       uuid.UUID   `json:"dayId"`
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Time        string      `json:"time,omitempty"`
	Description string      `json:"description"`
	Location    coordinates `json:"location"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type activityCreatedResponse struct {
	Message  string           `json:"message"`
	Activity activityResponse `json:"activity"`
}

func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		DayID:       a.DayID,
		Title:       a.Title,
		Type:        a.Category,
		Time:        a.Time,
		Description: a.Description,
		Location:    coordinates{Lat: a.Lat, Lng: a.Lng},
		CreatedAt:   a.CreatedAt,
	}
}

type dayResponse struct {
	ID         uuid.UUID          `json:"id"`
	Date       openapi_types.Date `json:"date"`
	Position   int                `json:"position"`
	Activities []activityResponse `json:"activities"`
}

type itineraryResponse struct {
	Itinerary []dayResponse `json:"itinerary"`
}

func dayToResponse(d domain.ItineraryDay) dayResponse {
	acts := make([]activityResponse, len(d.Activities))
	for i, a := range d.Activities {
		acts[i] = activityToResponse(a)
	}
	return dayResponse{
		ID:         d.ID,
		Date:       openapi_types.Date{Time: d.Date},
		Position:   d.Position,
		Activities: acts,
	}
}

type addExpenseRequest struct {
	TripID string              `json:"tripId"`
	Amount *decimal.Decimal    `json:"amount"`
	Type   string              `json:"type"`
	Date   *openapi_types.Date `json:"date"`
}

type removeExpenseRequest struct {
	TripID    string `json:"tripId"`
	ExpenseID string `json:"expenseId"`
}

type expenseResponse struct {
	ID        uuid.UUID          `json:"id"`
	TripID    uuid.UUID          `json:"tripId"`
	Amount    string             `json:"amount"`
	Type      string             `json:"type"`
	Date      openapi_types.Date `json:"date"`
	CreatedAt time.Time          `json:"createdAt"`
}

type expenseCreatedResponse struct {
	Message string          `json:"message"`
	Expense expenseResponse `json:"expense"`
}

type expenseListResponse struct {
	Expenses []expenseResponse `json:"expenses"`
	Total    string            `json:"total"`
}

func expenseToResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		TripID:    e.TripID,
		Amount:    e.Amount.StringFixed(2),
		Type:      e.Category,
		Date:      openapi_types.Date{Time: e.Date},
		CreatedAt: e.CreatedAt,
	}
}

// dateTime converts an optional wire date to the service's optional time.
func dateTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
