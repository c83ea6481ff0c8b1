package domain

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultMinOrderIntervalDays is the minimum number of days between two placed orders
const DefaultMinOrderIntervalDays = 7

// DaysPerMonth converts average daily demand into monthly demand
const DaysPerMonth = 30

// Day truncates t to its calendar day at midnight UTC
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DemandPoint is the aggregated demand of one SKU on one calendar day
type DemandPoint struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// LeadTimeMode selects which lead-time statistic drives the reorder policy
type LeadTimeMode string

const (
	LeadTimeAverage LeadTimeMode = "average"
	LeadTimeMax     LeadTimeMode = "maximum"
)

// ParseLeadTimeMode returns the mode for a label (case-insensitive).
// An empty label selects the average lead time.
func ParseLeadTimeMode(label string) (LeadTimeMode, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "average", "avg":
		return LeadTimeAverage, nil
	case "maximum", "max":
		return LeadTimeMax, nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unknown lead time mode %q", label)
}

// Label returns a human-readable label for the mode
func (m LeadTimeMode) Label() string {
	if m == LeadTimeMax {
		return "Maximum lead time"
	}
	return "Average lead time"
}

// LeadTimeProfile holds the vendor lead-time statistics of a SKU in days
type LeadTimeProfile struct {
	AverageDays float64 `json:"average_days"`
	MaxDays     float64 `json:"max_days"`
}

// Validate checks MaxDays >= AverageDays > 0
func (p LeadTimeProfile) Validate() error {
	if !isFinite(p.AverageDays) || !isFinite(p.MaxDays) {
		return errors.Wrapf(ErrInvalidInput, "lead time must be finite (average=%v, max=%v)", p.AverageDays, p.MaxDays)
	}
	if p.AverageDays <= 0 {
		return errors.Wrapf(ErrInvalidInput, "average lead time must be positive, got %v", p.AverageDays)
	}
	if p.MaxDays < p.AverageDays {
		return errors.Wrapf(ErrInvalidInput, "max lead time %v is below average lead time %v", p.MaxDays, p.AverageDays)
	}
	return nil
}

// Days returns the lead time selected by mode
func (p LeadTimeProfile) Days(mode LeadTimeMode) float64 {
	if mode == LeadTimeMax {
		return p.MaxDays
	}
	return p.AverageDays
}

// ReorderPolicy is the immutable reorder configuration of one simulation run
type ReorderPolicy struct {
	ReorderPoint         float64 `json:"reorder_point"`
	OrderQuantity        float64 `json:"order_quantity"`
	LeadTimeDays         float64 `json:"lead_time_days"`
	MinOrderIntervalDays int     `json:"min_order_interval_days"`
}

// NewReorderPolicy builds a policy with the default minimum order interval
func NewReorderPolicy(reorderPoint, orderQuantity, leadTimeDays float64) ReorderPolicy {
	return ReorderPolicy{
		ReorderPoint:         reorderPoint,
		OrderQuantity:        orderQuantity,
		LeadTimeDays:         leadTimeDays,
		MinOrderIntervalDays: DefaultMinOrderIntervalDays,
	}
}

// Validate rejects negative, non-finite or zero-lead-time policies
func (p ReorderPolicy) Validate() error {
	if !isFinite(p.ReorderPoint) || p.ReorderPoint < 0 {
		return errors.Wrapf(ErrInvalidInput, "reorder point must be a non-negative number, got %v", p.ReorderPoint)
	}
	if !isFinite(p.OrderQuantity) || p.OrderQuantity < 0 {
		return errors.Wrapf(ErrInvalidInput, "order quantity must be a non-negative number, got %v", p.OrderQuantity)
	}
	if !isFinite(p.LeadTimeDays) || p.LeadTimeDays <= 0 {
		return errors.Wrapf(ErrInvalidInput, "lead time must be a positive number of days, got %v", p.LeadTimeDays)
	}
	if p.MinOrderIntervalDays < 0 {
		return errors.Wrapf(ErrInvalidInput, "min order interval cannot be negative, got %d", p.MinOrderIntervalDays)
	}
	return nil
}

// ArrivalOffsetDays rounds the lead time half up to whole days, at least one
func (p ReorderPolicy) ArrivalOffsetDays() int {
	days := int(math.Floor(p.LeadTimeDays + 0.5))
	if days < 1 {
		return 1
	}
	return days
}

// StockPoint is the simulated on-hand stock at the end of one day
type StockPoint struct {
	Date       time.Time `json:"date"`
	StockLevel float64   `json:"stock_level"`
}

// OrderEvent is a replenishment order placed by the simulator
type OrderEvent struct {
	PlacedDate          time.Time `json:"placed_date"`
	Quantity            float64   `json:"quantity"`
	ExpectedArrivalDate time.Time `json:"expected_arrival_date"`
}

// Delivery is an order arrival applied to the stock curve
type Delivery struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// StockSummary aggregates a stock curve for display
type StockSummary struct {
	Mean             float64 `json:"mean"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Days             int     `json:"days"`
	StockoutDays     int     `json:"stockout_days"`
	DaysBelowWarning int     `json:"days_below_warning"`
}

// SimulationReport is the full result of a simulation request
type SimulationReport struct {
	RunID              string           `json:"run_id"`
	SKU                SKUOption        `json:"sku"`
	Params             SimulationParams `json:"params"`
	LeadTime           LeadTimeProfile  `json:"lead_time"`
	Policy             ReorderPolicy    `json:"policy"`
	AverageDailyDemand float64          `json:"average_daily_demand"`
	InitialStock       float64          `json:"initial_stock"`
	WarningLevel       float64          `json:"warning_level"`
	WindowStart        time.Time        `json:"window_start"`
	WindowEnd          time.Time        `json:"window_end"`
	History            []StockPoint     `json:"history"`
	Orders             []OrderEvent     `json:"orders"`
	Deliveries         []Delivery       `json:"deliveries"`
	Summary            StockSummary     `json:"summary"`
	CreatedAt          time.Time        `json:"created_at"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
