package simulation

import (
	"testing"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sale(sku string, date time.Time, qty int) domain.SalesRecord {
	return domain.SalesRecord{SKUID: sku, OrderDate: date, OrderQuantity: qty}
}

func TestBuildDemandSeries(t *testing.T) {
	records := []domain.SalesRecord{
		sale("A", day1.AddDate(0, 0, 3), 4),
		sale("A", day1.Add(15*time.Hour), 2),
		sale("B", day1, 100),
		sale("A", day1, 3),
		sale("A", day1.AddDate(0, 0, -1), 50),
		sale("A", day1.AddDate(0, 0, 10), 50),
		sale("A", day1.AddDate(0, 0, 3).Add(time.Hour), 1),
	}

	got, err := BuildDemandSeries(records, "A", day1, day1.AddDate(0, 0, 4))
	require.NoError(t, err)

	require.Len(t, got, 5)
	quantities := make([]int, len(got))
	for i, p := range got {
		assert.Equal(t, day1.AddDate(0, 0, i), p.Date)
		quantities[i] = p.Quantity
	}
	assert.Equal(t, []int{5, 0, 0, 5, 0}, quantities)
}

func TestBuildDemandSeries_SingleDayWindow(t *testing.T) {
	got, err := BuildDemandSeries([]domain.SalesRecord{sale("A", day1, 7)}, "A", day1, day1)
	require.NoError(t, err)
	assert.Equal(t, []domain.DemandPoint{{Date: day1, Quantity: 7}}, got)
}

func TestBuildDemandSeries_Errors(t *testing.T) {
	records := []domain.SalesRecord{sale("A", day1, 1), sale("B", day1.AddDate(0, 0, 2), 1)}

	_, err := BuildDemandSeries(records, "A", day1.AddDate(0, 0, 1), day1.AddDate(0, 0, 5))
	assert.True(t, errors.Is(err, domain.ErrDataGap))

	_, err = BuildDemandSeries(records, "C", day1, day1.AddDate(0, 0, 5))
	assert.True(t, errors.Is(err, domain.ErrDataGap))

	_, err = BuildDemandSeries(records, "A", day1.AddDate(0, 0, 1), day1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBuildDemandSeries_NegativeQuantity(t *testing.T) {
	records := []domain.SalesRecord{sale("A", day1, 3), sale("A", day1.AddDate(0, 0, 1), -2)}

	_, err := BuildDemandSeries(records, "A", day1, day1.AddDate(0, 0, 1))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// a return outside the window is never read
	got, err := BuildDemandSeries(records, "A", day1, day1)
	require.NoError(t, err)
	assert.Equal(t, 3, got[0].Quantity)
}

func TestSalesRange(t *testing.T) {
	records := []domain.SalesRecord{
		sale("A", day1.AddDate(0, 0, 5), 1),
		sale("A", day1.AddDate(0, 0, 2), 1),
		sale("B", day1, 1),
		sale("A", day1.AddDate(0, 0, 9), 1),
	}

	first, last, err := SalesRange(records, "A")
	require.NoError(t, err)
	assert.Equal(t, day1.AddDate(0, 0, 2), first)
	assert.Equal(t, day1.AddDate(0, 0, 9), last)

	_, _, err = SalesRange(records, "Z")
	assert.True(t, errors.Is(err, domain.ErrDataGap))
}

func TestAverageDailyDemand(t *testing.T) {
	assert.Equal(t, 0.0, AverageDailyDemand(nil))
	assert.Equal(t, 2.5, AverageDailyDemand(series(5, 0, 0, 5)))
}
