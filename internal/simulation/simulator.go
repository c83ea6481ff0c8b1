package simulation

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
)

type arrival struct {
	date     time.Time
	quantity float64
}

// state is owned by a single Simulate call and never escapes it
type state struct {
	stock      float64
	pending    []arrival // ordered by date, earliest first
	lastOrder  time.Time
	ordered    bool
	history    []domain.StockPoint
	orders     []domain.OrderEvent
	deliveries []domain.Delivery
}

// Result is the outcome of one simulation run
type Result struct {
	history    []domain.StockPoint
	ledger     OrderLedger
	deliveries []domain.Delivery
	pending    []domain.Delivery
}

// History returns one stock point per simulated day, in input order
func (r *Result) History() []domain.StockPoint {
	out := make([]domain.StockPoint, len(r.history))
	copy(out, r.history)
	return out
}

// Ledger returns the orders placed during the run
func (r *Result) Ledger() OrderLedger {
	return r.ledger
}

// Deliveries returns the arrivals applied during the run
func (r *Result) Deliveries() []domain.Delivery {
	out := make([]domain.Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

// Pending returns arrivals still in transit after the last simulated day
func (r *Result) Pending() []domain.Delivery {
	out := make([]domain.Delivery, len(r.pending))
	copy(out, r.pending)
	return out
}

// Simulate walks the demand series day by day. Each day applies arrivals due,
// consumes demand, places an order when stock is at or below the reorder point
// and nothing is in transit, then records the closing stock. Stock may go
// negative; that is a stockout, not an error.
func Simulate(series []domain.DemandPoint, initialStock float64, policy domain.ReorderPolicy) (*Result, error) {
	if len(series) == 0 {
		return nil, errors.WithStack(domain.ErrEmptySeries)
	}
	if math.IsNaN(initialStock) || math.IsInf(initialStock, 0) {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "initial stock must be finite, got %v", initialStock)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	s := &state{
		stock:   initialStock,
		history: make([]domain.StockPoint, 0, len(series)),
	}
	for _, point := range series {
		s.step(domain.Day(point.Date), float64(point.Quantity), policy)
	}

	pending := make([]domain.Delivery, len(s.pending))
	for i, a := range s.pending {
		pending[i] = domain.Delivery{Date: a.date, Quantity: a.quantity}
	}

	return &Result{
		history:    s.history,
		ledger:     OrderLedger{orders: s.orders},
		deliveries: s.deliveries,
		pending:    pending,
	}, nil
}

func (s *state) step(today time.Time, demand float64, policy domain.ReorderPolicy) {
	s.applyArrivals(today)

	s.stock -= demand

	if s.shouldOrder(today, policy) {
		s.placeOrder(today, policy)
	}

	s.history = append(s.history, domain.StockPoint{Date: today, StockLevel: s.stock})
}

func (s *state) applyArrivals(today time.Time) {
	due := 0
	for due < len(s.pending) && !s.pending[due].date.After(today) {
		a := s.pending[due]
		s.stock += a.quantity
		s.deliveries = append(s.deliveries, domain.Delivery{Date: a.date, Quantity: a.quantity})
		due++
	}
	s.pending = s.pending[due:]
}

func (s *state) shouldOrder(today time.Time, policy domain.ReorderPolicy) bool {
	// a zero reorder point disables reordering
	if policy.ReorderPoint <= 0 || s.stock > policy.ReorderPoint {
		return false
	}
	if len(s.pending) > 0 {
		return false
	}
	if s.ordered && policy.MinOrderIntervalDays > 0 &&
		domain.DaysBetween(s.lastOrder, today) < policy.MinOrderIntervalDays {
		return false
	}
	return true
}

func (s *state) placeOrder(today time.Time, policy domain.ReorderPolicy) {
	eta := today.AddDate(0, 0, policy.ArrivalOffsetDays())
	s.orders = append(s.orders, domain.OrderEvent{
		PlacedDate:          today,
		Quantity:            policy.OrderQuantity,
		ExpectedArrivalDate: eta,
	})
	s.lastOrder = today
	s.ordered = true

	i := sort.Search(len(s.pending), func(i int) bool { return s.pending[i].date.After(eta) })
	s.pending = append(s.pending, arrival{})
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = arrival{date: eta, quantity: policy.OrderQuantity}
}
