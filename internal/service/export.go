package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Ledger is a trip's expenses flattened for export, with their sum.
type Ledger struct {
	Trip  domain.Trip
	Rows  []domain.LedgerRow
	Total decimal.Decimal
}

// Export returns the ledger of an owned trip: one row per expense in date order.
func (s *ExpenseService) Export(ctx context.Context, ownerID, tripID uuid.UUID) (Ledger, error) {
	trip, err := ownedTrip(ctx, s.trips, ownerID, tripID)
	if err != nil {
		return Ledger{}, fmt.Errorf("service.ExpenseService.Export: %w", err)
	}
	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return Ledger{}, fmt.Errorf("service.ExpenseService.Export: %w", err)
	}
	return Ledger{
		Trip:  trip,
		Rows:  domain.LedgerRows(trip, expenses),
		Total: domain.TotalSpend(expenses),
	}, nil
}
