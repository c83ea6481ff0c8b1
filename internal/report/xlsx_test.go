package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.SimulationReport {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.SimulationReport{
		RunID:        "run-1",
		SKU:          domain.SKUOption{SKUID: "SKU-1", SKUName: "Widget"},
		Params:       domain.SimulationParams{SKUID: "SKU-1", LeadTimeMode: domain.LeadTimeAverage, OrderMonths: 1},
		Policy:       domain.NewReorderPolicy(10, 150, 2),
		InitialStock: 12,
		WarningLevel: 12,
		WindowStart:  day,
		WindowEnd:    day.AddDate(0, 0, 2),
		History: []domain.StockPoint{
			{Date: day, StockLevel: 7},
			{Date: day.AddDate(0, 0, 1), StockLevel: 2},
			{Date: day.AddDate(0, 0, 2), StockLevel: 147},
		},
		Orders:     []domain.OrderEvent{{PlacedDate: day, Quantity: 150, ExpectedArrivalDate: day.AddDate(0, 0, 2)}},
		Deliveries: []domain.Delivery{{Date: day.AddDate(0, 0, 2), Quantity: 150}},
		Summary:    domain.StockSummary{Mean: 52, Min: 2, Max: 147, Days: 3},
	}
}

func TestWriteSimulationXLSX(t *testing.T) {
	data, err := SimulationXLSX(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetStock, SheetOrders, SheetDeliveries}, f.GetSheetList())

	sku, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "SKU-1 - Widget", sku)

	stock, err := f.GetRows(SheetStock)
	require.NoError(t, err)
	require.Len(t, stock, 4)
	assert.Equal(t, []string{"2024-01-02", "2", "10", "12"}, stock[2])

	orders, err := f.GetRows(SheetOrders)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, []string{"2024-01-01", "150", "2024-01-03"}, orders[1])
}

func TestWriteComparisonXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteComparisonXLSX(&buf, []domain.ScenarioResult{
		{Name: "baseline", Report: sampleReport()},
		{Name: "double", Report: sampleReport()},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetScenarios)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "double", rows[2][0])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "simulation_SKU-1_20240103.xlsx", FileName(sampleReport()))
}
