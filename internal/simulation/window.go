package simulation

import (
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
)

// Windowed is a run restricted to a display window
type Windowed struct {
	Start      time.Time
	End        time.Time
	History    []domain.StockPoint
	Orders     []domain.OrderEvent
	Deliveries []domain.Delivery
}

// LastNDays returns the start of a trailing display window ending at end.
// A non-positive n selects everything from the beginning of time.
func LastNDays(end time.Time, n int) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	return domain.Day(end).AddDate(0, 0, -n)
}

// Window keeps the stock points, orders and deliveries dated within [start, end].
// Deliveries include arrivals still in transit after the run.
func Window(r *Result, start, end time.Time) Windowed {
	w := Windowed{Start: start, End: end}
	in := func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}

	for _, p := range r.history {
		if in(p.Date) {
			w.History = append(w.History, p)
		}
	}
	for _, o := range r.ledger.orders {
		if in(o.PlacedDate) {
			w.Orders = append(w.Orders, o)
		}
	}
	for _, d := range append(r.Deliveries(), r.pending...) {
		if in(d.Date) {
			w.Deliveries = append(w.Deliveries, d)
		}
	}
	return w
}
