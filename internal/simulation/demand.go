package simulation

import (
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
)

// BuildDemandSeries aggregates sales order lines of one SKU into a contiguous
// daily series covering [start, end]. Days without sales carry quantity 0.
// A negative line (a return) inside the window is invalid input.
func BuildDemandSeries(records []domain.SalesRecord, skuID string, start, end time.Time) ([]domain.DemandPoint, error) {
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	days := domain.DaysBetween(start, end) + 1
	series := make([]domain.DemandPoint, days)
	for i := range series {
		series[i].Date = start.AddDate(0, 0, i)
	}

	matched := 0
	for _, rec := range records {
		if rec.SKUID != skuID {
			continue
		}
		day := domain.Day(rec.OrderDate)
		if day.Before(start) || day.After(end) {
			continue
		}
		if rec.OrderQuantity < 0 {
			return nil, errors.Wrapf(domain.ErrInvalidInput, "sku %s order %s on %s has negative quantity %d",
				skuID, rec.OrderNumber, day.Format("2006-01-02"), rec.OrderQuantity)
		}
		series[domain.DaysBetween(start, day)].Quantity += rec.OrderQuantity
		matched++
	}

	if matched == 0 {
		return nil, errors.Wrapf(domain.ErrDataGap, "sku %s between %s and %s",
			skuID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return series, nil
}

// SalesRange returns the first and last order day of a SKU
func SalesRange(records []domain.SalesRecord, skuID string) (first, last time.Time, err error) {
	found := false
	for _, rec := range records {
		if rec.SKUID != skuID {
			continue
		}
		day := domain.Day(rec.OrderDate)
		if !found || day.Before(first) {
			first = day
		}
		if !found || day.After(last) {
			last = day
		}
		found = true
	}
	if !found {
		return time.Time{}, time.Time{}, errors.Wrapf(domain.ErrDataGap, "sku %s has no sales", skuID)
	}
	return first, last, nil
}

// AverageDailyDemand is the total demand divided by the number of days in the series
func AverageDailyDemand(series []domain.DemandPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	total := 0
	for _, p := range series {
		total += p.Quantity
	}
	return float64(total) / float64(len(series))
}
