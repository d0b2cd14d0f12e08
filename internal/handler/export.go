package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{"trip_id", "trip_title", "destination", "date", "type", "amount"}

type ledgerRowResponse struct {
	TripID      string `json:"tripId"`
	TripTitle   string `json:"tripTitle"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
}

// ExportTrip handles GET /trips/{id}/export.
// It returns the trip's expense ledger as a flat table.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "json" && format != "csv" {
		s.respondError(w, r, badRequest("format must be csv or json"))
		return
	}

	ledger, err := s.expenses.Export(r.Context(), caller(r), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, ledger)
		return
	}
	out := make([]ledgerRowResponse, 0, len(ledger.Rows))
	for _, row := range ledger.Rows {
		out = append(out, ledgerRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes the ledger with a header row and a trailing TOTAL row.
func writeCSV(w http.ResponseWriter, ledger service.Ledger) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(csvHeaders)
	for _, row := range ledger.Rows {
		_ = cw.Write(ledgerRowToRecord(row))
	}
	_ = cw.Write([]string{"TOTAL", "", "", "", "", ledger.Total.StringFixed(2)})
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.csv"`, ledger.Trip.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func ledgerRowToResponse(r domain.LedgerRow) ledgerRowResponse {
	return ledgerRowResponse{
		TripID:      r.TripID,
		TripTitle:   r.TripTitle,
		Destination: r.Destination,
		Date:        r.Date,
		Type:        r.Category,
		Amount:      r.Amount.StringFixed(2),
	}
}

func ledgerRowToRecord(r domain.LedgerRow) []string {
	return []string{r.TripID, r.TripTitle, r.Destination, r.Date, r.Category, r.Amount.StringFixed(2)}
}
