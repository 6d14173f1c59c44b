package supplies

import (
	"cotizador/internal/core/apperror"
)

// Ledger tracks available supply quantities for one quotation session.
// It works off its own snapshot of the catalog, not the backing store:
// reserving stock while composing a quotation must not touch the files
// until the quotation itself is committed.
type Ledger struct {
	available map[string]float64
}

// NewLedger snapshots the on-hand quantities of the given supplies.
func NewLedger(items []Supply) *Ledger {
	available := make(map[string]float64, len(items))
	for _, s := range items {
		available[s.ID] = s.CantidadVolumen
	}
	return &Ledger{available: available}
}

// Available returns the remaining quantity for a supply, 0 when unknown.
func (l *Ledger) Available(supplyID string) float64 {
	return l.available[supplyID]
}

// Reserve decreases the available quantity by qty. When stock is
// insufficient it fails and leaves the quantity unchanged.
func (l *Ledger) Reserve(supplyID string, qty float64) error {
	if qty < 0 {
		return apperror.NewInvalidInput("quantity must not be negative").
			WithDetail("supply_id", supplyID)
	}
	have, ok := l.available[supplyID]
	if !ok {
		return apperror.NewNotFound("insumo", supplyID)
	}
	if qty > have {
		return apperror.NewInsufficientStock(supplyID, qty, have)
	}
	l.available[supplyID] = have - qty
	return nil
}

// Release returns qty units to the available quantity. Used when a line
// item is removed or reduced before the quotation is finalized.
func (l *Ledger) Release(supplyID string, qty float64) {
	if qty < 0 {
		return
	}
	l.available[supplyID] += qty
}
