package simulation

import (
	"math"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
)

// DerivePolicy computes the reorder point and order size for one run.
//
//	reorder point  = average daily demand × lead time
//	order quantity = average daily demand × 30 × order months
//
// Zero demand yields a zero policy, which never places an order.
func DerivePolicy(profile domain.LeadTimeProfile, mode domain.LeadTimeMode, orderMonths, avgDailyDemand float64) (domain.ReorderPolicy, error) {
	if err := profile.Validate(); err != nil {
		return domain.ReorderPolicy{}, err
	}
	if mode != domain.LeadTimeAverage && mode != domain.LeadTimeMax {
		return domain.ReorderPolicy{}, errors.Wrapf(domain.ErrInvalidInput, "unknown lead time mode %q", mode)
	}
	if math.IsNaN(orderMonths) || math.IsInf(orderMonths, 0) || orderMonths <= 0 {
		return domain.ReorderPolicy{}, errors.Wrapf(domain.ErrInvalidInput, "order months must be positive, got %v", orderMonths)
	}
	if math.IsNaN(avgDailyDemand) || math.IsInf(avgDailyDemand, 0) || avgDailyDemand < 0 {
		return domain.ReorderPolicy{}, errors.Wrapf(domain.ErrInvalidInput, "average daily demand must be non-negative, got %v", avgDailyDemand)
	}

	leadTime := profile.Days(mode)
	return domain.NewReorderPolicy(
		avgDailyDemand*leadTime,
		avgDailyDemand*domain.DaysPerMonth*orderMonths,
		leadTime,
	), nil
}

// WarningLevel is the display-only threshold drawn above the reorder point
func WarningLevel(policy domain.ReorderPolicy, ratio float64) float64 {
	return policy.ReorderPoint * (1 + ratio)
}
