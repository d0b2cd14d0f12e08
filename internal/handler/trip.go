package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	trip, err := s.trips.Create(r.Context(), caller(r), service.CreateTripInput{
		Title:          req.Title,
		Destination:    req.Destination,
		DestinationLat: req.DestinationLat,
		DestinationLng: req.DestinationLng,
		StartDate:      dateTime(req.StartDate),
		EndDate:        dateTime(req.EndDate),
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripCreatedResponse{Message: "Trip created successfully", Trip: tripToDetailResponse(trip)})
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.trips.List(r.Context(), caller(r), domain.NewPaginationParams(page, limit))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := make([]tripResponse, len(result.Items))
	for i, t := range result.Items {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data: data,
		Pagination: pagination{
			Page:  result.Params.Page,
			Limit: result.Params.Limit,
			Total: result.Total,
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	trip, err := s.trips.Get(r.Context(), caller(r), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToDetailResponse(trip))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.trips.Delete(r.Context(), caller(r), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: service.TripDeletedMessage})
}

// queryInt parses an optional integer query parameter. Absent means nil.
func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, badRequest(name + " must be an integer")
	}
	return &n, nil
}
