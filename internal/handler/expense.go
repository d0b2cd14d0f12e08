package handler

import (
	"net/http"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// ListExpenses handles GET /expenses?tripId=. The response carries the
// expenses in date order and their total.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := requiredQueryID(r, "tripId")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	expenses, err := s.expenses.List(r.Context(), caller(r), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := expenseListResponse{
		Expenses: make([]expenseResponse, len(expenses)),
		Total:    domain.TotalSpend(expenses).StringFixed(2),
	}
	for i, e := range expenses {
		resp.Expenses[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddExpense handles POST /expenses.
func (s *Server) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	tripID, err := parseID(req.TripID, "tripId")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	expense, err := s.expenses.Add(r.Context(), caller(r), service.AddExpenseInput{
		TripID:   tripID,
		Amount:   req.Amount,
		Category: req.Type,
		Date:     dateTime(req.Date),
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, expenseCreatedResponse{Message: "Expense added", Expense: expenseToResponse(expense)})
}

// RemoveExpense handles DELETE /expenses. The ids come from a JSON body or,
// when there is none, from the query string.
func (s *Server) RemoveExpense(w http.ResponseWriter, r *http.Request) {
	var req removeExpenseRequest
	if hasBody(r) {
		if err := decodeJSON(r, &req); err != nil {
			s.respondError(w, r, err)
			return
		}
	} else {
		q := r.URL.Query()
		req = removeExpenseRequest{TripID: q.Get("tripId"), ExpenseID: q.Get("expenseId")}
	}

	var p idParser
	tripID := p.parse(req.TripID, "tripId")
	expenseID := p.parse(req.ExpenseID, "expenseId")
	if p.err != nil {
		s.respondError(w, r, p.err)
		return
	}

	if err := s.expenses.Remove(r.Context(), caller(r), tripID, expenseID); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Expense deleted successfully"})
}
