package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/service"
)

// GetItinerary handles GET /itinerary?tripId=.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := requiredQueryID(r, "tripId")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	days, err := s.itinerary.List(r.Context(), caller(r), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := itineraryResponse{Itinerary: make([]dayResponse, len(days))}
	for i, d := range days {
		resp.Itinerary[i] = dayToResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddActivity handles POST /itinerary.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	var req addActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	var p idParser
	tripID := p.parse(req.TripID, "tripId")
	dayID := p.parse(req.DayID, "dayId")
	if p.err != nil {
		s.respondError(w, r, p.err)
		return
	}

	activity, err := s.itinerary.AddActivity(r.Context(), caller(r), service.AddActivityInput{
		TripID:      tripID,
		DayID:       dayID,
		Title:       req.Title,
		Category:    req.Type,
		Time:        req.Time,
		Description: req.Description,
		Lat:         req.Location.Lat,
		Lng:         req.Location.Lng,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, activityCreatedResponse{Message: "Activity created", Activity: activityToResponse(activity)})
}

// RemoveActivity handles DELETE /itinerary. The ids come from a JSON body or,
// when there is none, from the query string.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	var req removeActivityRequest
	if hasBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
	} else {
		q := r.URL.Query()
		req = removeActivityRequest{TripID: q.Get("tripId"), DayID: q.Get("dayId"), ActivityID: q.Get("activityId")}
	}

	var p idParser
	tripID := p.parse(req.TripID, "tripId")
	dayID := p.parse(req.DayID, "dayId")
	activityID := p.parse(req.ActivityID, "activityId")
	if p.err != nil {
		s.respondError(w, r, p.err)
		return
	}

	if err := s.itinerary.RemoveActivity(r.Context(), caller(r), tripID, dayID, activityID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Activity deleted successfully"})
}
