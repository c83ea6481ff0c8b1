package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	sc, err := parseScenario("slow:max:2:40")
	require.NoError(t, err)
	assert.Equal(t, "slow", sc.Name)
	assert.Equal(t, domain.LeadTimeMax, sc.LeadTimeMode)
	require.NotNil(t, sc.OrderMonths)
	assert.Equal(t, 2.0, *sc.OrderMonths)
	require.NotNil(t, sc.InitialStock)
	assert.Equal(t, 40.0, *sc.InitialStock)

	sc, err = parseScenario("base")
	require.NoError(t, err)
	assert.Equal(t, "base", sc.Name)
	assert.Empty(t, sc.LeadTimeMode)
	assert.Nil(t, sc.OrderMonths)
	assert.Nil(t, sc.InitialStock)

	sc, err = parseScenario("half::0.5")
	require.NoError(t, err)
	require.NotNil(t, sc.OrderMonths)
	assert.Equal(t, 0.5, *sc.OrderMonths)
}

func TestParseScenario_Invalid(t *testing.T) {
	for _, raw := range []string{"", ":max", "a:weekly", "a:max:two", "a:max:1:x", "a:b:c:d:e"} {
		_, err := parseScenario(raw)
		assert.Error(t, err, raw)
	}
}

func testReport() *domain.SimulationReport {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return &domain.SimulationReport{
		SKU:    domain.SKUOption{SKUID: "SKU-1", SKUName: "Widget"},
		Params: domain.SimulationParams{LeadTimeMode: domain.LeadTimeAverage},
		Policy: domain.NewReorderPolicy(10, 150, 2),
		History: []domain.StockPoint{
			{Date: day(1), StockLevel: 7},
			{Date: day(2), StockLevel: 2},
		},
		Orders:      []domain.OrderEvent{{PlacedDate: day(2), Quantity: 150, ExpectedArrivalDate: day(4)}},
		WindowStart: day(1),
		WindowEnd:   day(2),
		Summary:     domain.StockSummary{Mean: 4.5, Min: 2, Max: 7, Days: 2},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, testReport())

	out := buf.String()
	assert.Contains(t, out, "SKU-1 - Widget")
	assert.Contains(t, out, "Reorder point  10.00")
	assert.Contains(t, out, "2024-01-01 to 2024-01-02")
	assert.Contains(t, out, "1 order(s)")
	assert.Contains(t, out, "2024-01-04")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	printComparison(&buf, []domain.ScenarioResult{{Name: "base", Report: testReport()}})

	out := buf.String()
	assert.Contains(t, out, "scenario")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "150.00")
}
