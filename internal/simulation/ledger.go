package simulation

import (
	"iter"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
)

// OrderLedger is a read-only view over the orders placed during one run
type OrderLedger struct {
	orders []domain.OrderEvent
}

// Len returns the number of placed orders
func (l OrderLedger) Len() int {
	return len(l.orders)
}

// At returns the i-th order in placement order
func (l OrderLedger) At(i int) domain.OrderEvent {
	return l.orders[i]
}

// All iterates the orders in placement order
func (l OrderLedger) All() iter.Seq2[int, domain.OrderEvent] {
	return func(yield func(int, domain.OrderEvent) bool) {
		for i, o := range l.orders {
			if !yield(i, o) {
				return
			}
		}
	}
}

// Orders returns a copy of the ledger entries
func (l OrderLedger) Orders() []domain.OrderEvent {
	out := make([]domain.OrderEvent, len(l.orders))
	copy(out, l.orders)
	return out
}
