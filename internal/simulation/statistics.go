package simulation

import (
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
)

// Summarize returns mean, min and max stock over the history
func Summarize(history []domain.StockPoint) (domain.StockSummary, error) {
	return SummarizeWithWarning(history, 0)
}

// SummarizeWithWarning also counts stockout days and days at or below warningLevel
func SummarizeWithWarning(history []domain.StockPoint, warningLevel float64) (domain.StockSummary, error) {
	if len(history) == 0 {
		return domain.StockSummary{}, errors.WithStack(domain.ErrEmptyHistory)
	}

	summary := domain.StockSummary{
		Min:  history[0].StockLevel,
		Max:  history[0].StockLevel,
		Days: len(history),
	}
	var total float64
	for _, p := range history {
		total += p.StockLevel
		if p.StockLevel < summary.Min {
			summary.Min = p.StockLevel
		}
		if p.StockLevel > summary.Max {
			summary.Max = p.StockLevel
		}
		if p.StockLevel <= 0 {
			summary.StockoutDays++
		}
		if warningLevel > 0 && p.StockLevel <= warningLevel {
			summary.DaysBelowWarning++
		}
	}
	summary.Mean = total / float64(len(history))

	return summary, nil
}
