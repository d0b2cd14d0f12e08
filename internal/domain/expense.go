package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single spend recorded against a trip. Amount is held to cents.
type Expense struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	CreatedAt time.Time
}

// TotalSpend sums the amounts of expenses. The total is derived, never stored.
func TotalSpend(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
