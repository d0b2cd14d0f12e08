package domain

import "github.com/shopspring/decimal"

// LedgerRow is a single row in a trip's expense export.
// It is a flat, denormalized view: trip fields are repeated on every row.
type LedgerRow struct {
	TripID      string
	TripTitle   string
	Destination string
	Date        string // "2006-01-02"
	Category    string
	Amount      decimal.Decimal
}

// LedgerRows flattens a trip and its expenses into export rows, in the order
// the expenses are given.
func LedgerRows(trip Trip, expenses []Expense) []LedgerRow {
	rows := make([]LedgerRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, LedgerRow{
			TripID:      trip.ID.String(),
			TripTitle:   trip.Title,
			Destination: trip.Destination,
			Date:        e.Date.Format(DateLayout),
			Category:    e.Category,
			Amount:      e.Amount,
		})
	}
	return rows
}
