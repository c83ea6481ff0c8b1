package domain

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SimulationParams is the single configuration record of a simulation request.
// InitialStock nil means the dataset's current stock quantity is used.
// A nil StartDate/EndDate falls back to the SKU's first/last order date.
// WarningRatio and DisplayDays are pointers so an explicit 0 survives defaulting;
// DisplayDays 0 shows the whole run.
type SimulationParams struct {
	SKUID        string       `json:"sku_id" validate:"required"`
	LeadTimeMode LeadTimeMode `json:"lead_time_mode" validate:"omitempty,oneof=average maximum"`
	OrderMonths  float64      `json:"order_months" validate:"gt=0,lte=120"`
	InitialStock *float64     `json:"initial_stock,omitempty" validate:"omitempty,gte=0"`
	WarningRatio *float64     `json:"warning_ratio,omitempty" validate:"omitempty,gte=0,lte=10"`
	StartDate    *time.Time   `json:"start_date,omitempty"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	DisplayDays  *int         `json:"display_days,omitempty" validate:"omitempty,gte=0"`
}

// SimulationDefaults fills the zero-valued fields of a request
type SimulationDefaults struct {
	LeadTimeMode LeadTimeMode
	OrderMonths  float64
	InitialStock *float64
	WarningRatio float64
	DisplayDays  int
}

// WithDefaults returns a copy of p with unset fields taken from d
func (p SimulationParams) WithDefaults(d SimulationDefaults) SimulationParams {
	if p.LeadTimeMode == "" {
		p.LeadTimeMode = d.LeadTimeMode
	}
	if p.OrderMonths == 0 {
		p.OrderMonths = d.OrderMonths
	}
	if p.InitialStock == nil && d.InitialStock != nil {
		v := *d.InitialStock
		p.InitialStock = &v
	}
	if p.WarningRatio == nil {
		v := d.WarningRatio
		p.WarningRatio = &v
	}
	if p.DisplayDays == nil {
		v := d.DisplayDays
		p.DisplayDays = &v
	}
	return p
}

// Ratio returns the warning ratio, 0 when unset
func (p SimulationParams) Ratio() float64 {
	if p.WarningRatio == nil {
		return 0
	}
	return *p.WarningRatio
}

// Days returns the display window length, 0 (whole run) when unset
func (p SimulationParams) Days() int {
	if p.DisplayDays == nil {
		return 0
	}
	return *p.DisplayDays
}

// Validate checks the record once at the boundary, before it reaches the engine
func (p SimulationParams) Validate() error {
	if p.InitialStock != nil && (math.IsNaN(*p.InitialStock) || math.IsInf(*p.InitialStock, 0)) {
		return errors.Wrapf(ErrInvalidInput, "initial stock must be finite, got %v", *p.InitialStock)
	}
	if math.IsNaN(p.OrderMonths) || math.IsNaN(p.Ratio()) {
		return errors.Wrap(ErrInvalidInput, "order months and warning ratio must be numbers")
	}
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(ErrInvalidInput, err.Error())
	}
	if p.StartDate != nil && p.EndDate != nil && Day(*p.StartDate).After(Day(*p.EndDate)) {
		return errors.Wrapf(ErrInvalidInput, "start date %s is after end date %s",
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}
	return nil
}

// MaxScenarios bounds a single what-if comparison
const MaxScenarios = 10

// Scenario overrides some fields of a base request for a what-if comparison
type Scenario struct {
	Name         string       `json:"name" validate:"required"`
	LeadTimeMode LeadTimeMode `json:"lead_time_mode,omitempty"`
	OrderMonths  *float64     `json:"order_months,omitempty"`
	InitialStock *float64     `json:"initial_stock,omitempty"`
	WarningRatio *float64     `json:"warning_ratio,omitempty"`
}

// Apply returns base with the scenario's overrides
func (s Scenario) Apply(base SimulationParams) SimulationParams {
	p := base
	if s.LeadTimeMode != "" {
		p.LeadTimeMode = s.LeadTimeMode
	}
	if s.OrderMonths != nil {
		p.OrderMonths = *s.OrderMonths
	}
	if s.InitialStock != nil {
		v := *s.InitialStock
		p.InitialStock = &v
	}
	if s.WarningRatio != nil {
		v := *s.WarningRatio
		p.WarningRatio = &v
	}
	return p
}

// ScenarioResult pairs a scenario name with its report
type ScenarioResult struct {
	Name   string            `json:"name"`
	Report *SimulationReport `json:"report"`
}
