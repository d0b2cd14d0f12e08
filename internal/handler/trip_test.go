package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:             uuid.New(),
		UserID:         testUserID,
		Title:          "Portugal",
		Destination:    "Lisbon",
		DestinationLat: 38.7223,
		DestinationLng: -9.1393,
		StartDate:      date(2025, time.June, 1),
		EndDate:        date(2025, time.June, 3),
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

type tripBody struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Itinerary   []struct {
		ID         uuid.UUID `json:"id"`
		Date       string    `json:"date"`
		Position   int       `json:"position"`
		Activities []any     `json:"activities"`
	} `json:"itinerary"`
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	ts := newTestServer(t)
	fixture := tripFixture()
	fixture.Itinerary = []domain.ItineraryDay{
		{ID: uuid.New(), TripID: fixture.ID, Date: date(2025, time.June, 1), Position: 1},
		{ID: uuid.New(), TripID: fixture.ID, Date: date(2025, time.June, 2), Position: 2},
		{ID: uuid.New(), TripID: fixture.ID, Date: date(2025, time.June, 3), Position: 3},
	}
	var got service.CreateTripInput
	ts.trips.create = func(_ context.Context, ownerID uuid.UUID, in service.CreateTripInput) (domain.Trip, error) {
		assert.Equal(t, testUserID, ownerID)
		got = in
		return fixture, nil
	}

	rec := ts.doAuthed(t, jsonRequest(t, http.MethodPost, "/trips", map[string]any{
		"title":          "Portugal",
		"destination":    "Lisbon",
		"destinationLat": 38.7223,
		"destinationLng": -9.1393,
		"startDate":      "2025-06-01",
		"endDate":        "2025-06-03",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode[struct {
		Message string   `json:"message"`
		Trip    tripBody `json:"trip"`
	}](t, rec)
	assert.Equal(t, "Trip created successfully", body.Message)
	assert.Equal(t, fixture.ID, body.Trip.ID)
	assert.Equal(t, "2025-06-01", body.Trip.StartDate)
	require.Len(t, body.Trip.Itinerary, 3)
	assert.Equal(t, "2025-06-03", body.Trip.Itinerary[2].Date)
	assert.NotNil(t, body.Trip.Itinerary[0].Activities)

	require.NotNil(t, got.StartDate)
	assert.True(t, got.StartDate.Equal(date(2025, time.June, 1)))
	require.NotNil(t, got.DestinationLng)
	assert.InDelta(t, -9.1393, *got.DestinationLng, 1e-9)
}

func TestCreateTrip_MissingFieldsReachService(t *testing.T) {
	ts := newTestServer(t)
	ts.trips.create = func(_ context.Context, _ uuid.UUID, in service.CreateTripInput) (domain.Trip, error) {
		assert.Nil(t, in.StartDate)
		assert.Nil(t, in.DestinationLat)
		return domain.Trip{}, fmt.Errorf("%w: title, destination, coordinates, startDate and endDate are required", domain.ErrValidation)
	}

	rec := ts.doAuthed(t, jsonRequest(t, http.MethodPost, "/trips", map[string]any{"title": "Portugal"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode[errorResponse](t, rec).Code)
}

func TestCreateTrip_400_BadDate(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.doAuthed(t, jsonRequest(t, http.MethodPost, "/trips", map[string]any{
		"title":     "Portugal",
		"startDate": "June 1st",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed JSON body", decode[errorResponse](t, rec).Message)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200_Pagination(t *testing.T) {
	ts := newTestServer(t)
	fixture := tripFixture()
	ts.trips.list = func(_ context.Context, ownerID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
		assert.Equal(t, testUserID, ownerID)
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 5, p.Limit)
		return domain.Page[domain.Trip]{Items: []domain.Trip{fixture}, Total: 6, Params: p}, nil
	}

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodGet, "/trips?page=2&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Data       []tripBody `json:"data"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"pagination"`
	}](t, rec)
	require.Len(t, body.Data, 1)
	assert.Equal(t, fixture.ID, body.Data[0].ID)
	assert.Nil(t, body.Data[0].Itinerary, "list entries omit the itinerary")
	assert.Equal(t, 2, body.Pagination.Page)
	assert.Equal(t, 5, body.Pagination.Limit)
	assert.Equal(t, int64(6), body.Pagination.Total)
}

func TestListTrips_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t)
	ts.trips.list = func(_ context.Context, _ uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
		return domain.Page[domain.Trip]{Items: []domain.Trip{}, Params: p}, nil
	}

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodGet, "/trips", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_400_NonNumericPage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodGet, "/trips?page=two", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "page must be an integer", decode[errorResponse](t, rec).Message)
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetTrip_200_IncludesItinerary(t *testing.T) {
	ts := newTestServer(t)
	fixture := tripFixture()
	ts.trips.get = func(_ context.Context, ownerID, tripID uuid.UUID) (domain.Trip, error) {
		assert.Equal(t, fixture.ID, tripID)
		return fixture, nil
	}

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodGet, "/trips/"+fixture.ID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"itinerary":[]`)
}

func TestGetTrip_400_InvalidID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrip_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", fmt.Errorf("service.TripService.Get: %w: trip not found", domain.ErrNotFound), http.StatusNotFound, "trip not found"},
		{"other owner", fmt.Errorf("service.TripService.Get: %w: trip belongs to another user", domain.ErrForbidden), http.StatusForbidden, "trip belongs to another user"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.trips.get = func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
				return domain.Trip{}, tc.err
			}

			rec := ts.doAuthed(t, httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil))

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, decode[errorResponse](t, rec).Message)
		})
	}
}

// ---- DELETE /trips/{id} ----------------------------------------------------

func TestDeleteTrip_200(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.New()
	ts.trips.delete = func(_ context.Context, ownerID, tripID uuid.UUID) error {
		assert.Equal(t, testUserID, ownerID)
		assert.Equal(t, id, tripID)
		return nil
	}

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodDelete, "/trips/"+id.String(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.TripDeletedMessage, decode[map[string]string](t, rec)["message"])
}

func TestDeleteTrip_403_OtherOwner(t *testing.T) {
	ts := newTestServer(t)
	ts.trips.delete = func(context.Context, uuid.UUID, uuid.UUID) error {
		return fmt.Errorf("%w: trip belongs to another user", domain.ErrForbidden)
	}

	rec := ts.doAuthed(t, httptest.NewRequest(http.MethodDelete, "/trips/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
