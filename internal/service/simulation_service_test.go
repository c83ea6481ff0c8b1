package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/cache"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type staticLoader struct {
	mu    sync.Mutex
	ds    *dataset.Dataset
	err   error
	calls int
}

func (l *staticLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.ds, l.err
}

func (l *staticLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func (l *staticLoader) fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

type memoryRuns struct {
	mu   sync.Mutex
	runs map[string]*domain.SimulationReport
}

func (m *memoryRuns) SaveRun(ctx context.Context, report *domain.SimulationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runs == nil {
		m.runs = make(map[string]*domain.SimulationReport)
	}
	m.runs[report.RunID] = report
	return nil
}

func (m *memoryRuns) GetRun(ctx context.Context, id string) (*domain.SimulationReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, errors.WithStack(domain.ErrRunNotFound)
}

func (m *memoryRuns) ListRuns(ctx context.Context, skuID string, limit int) ([]domain.SimulationRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.SimulationRun{}
	for id, r := range m.runs {
		out = append(out, domain.SimulationRun{ID: id, SKUID: r.SKU.SKUID, CreatedAt: r.CreatedAt})
	}
	return out, nil
}

// mapCache is an in-process SimulationCache keyed like the redis one
type mapCache struct {
	mu      sync.Mutex
	reports map[string]*domain.SimulationReport
}

func (c *mapCache) Get(ctx context.Context, params domain.SimulationParams) (*domain.SimulationReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.reports[cache.BuildSimulationKey(params)]
	return r, ok, nil
}

func (c *mapCache) Set(ctx context.Context, params domain.SimulationParams, report *domain.SimulationReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reports == nil {
		c.reports = make(map[string]*domain.SimulationReport)
	}
	c.reports[cache.BuildSimulationKey(params)] = report
	return nil
}

func (c *mapCache) InvalidateSKU(ctx context.Context, sku string) error { return nil }

func (c *mapCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = nil
	return nil
}

func testDataset() *dataset.Dataset {
	var sales []domain.SalesRecord
	for i := 0; i < 5; i++ {
		sales = append(sales, domain.SalesRecord{
			OrderNumber:   "SO",
			OrderDate:     jan1.AddDate(0, 0, i),
			SKUID:         "SKU-1",
			OrderQuantity: 5,
		})
	}
	// SKU-2 only sells on the first and last day
	sales = append(sales,
		domain.SalesRecord{OrderDate: jan1, SKUID: "SKU-2", OrderQuantity: 4},
		domain.SalesRecord{OrderDate: jan1.AddDate(0, 0, 3), SKUID: "SKU-2", OrderQuantity: 4},
	)

	return dataset.New(sales,
		[]domain.InventoryControl{
			{SKUID: "SKU-1", CurrentStockQuantity: 12, AverageLeadTimeDays: 2, MaximumLeadTimeDays: 4},
			{SKUID: "SKU-2", CurrentStockQuantity: 3, AverageLeadTimeDays: 1, MaximumLeadTimeDays: 1},
			{SKUID: "SKU-3", CurrentStockQuantity: 0, AverageLeadTimeDays: 1, MaximumLeadTimeDays: 1},
		},
		[]domain.SKUItem{
			{SKUID: "SKU-1", SKUName: "Widget"},
			{SKUID: "SKU-2", SKUName: "Gadget"},
			{SKUID: "SKU-3", SKUName: "Gizmo"},
		},
	)
}

var testDefaults = domain.SimulationDefaults{
	LeadTimeMode: domain.LeadTimeAverage,
	OrderMonths:  1,
	WarningRatio: 0.2,
	DisplayDays:  30,
}

func newTestService(t *testing.T) (*SimulationService, *memoryRuns, *metrics.Metrics) {
	t.Helper()
	runs := &memoryRuns{}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewSimulationService(&staticLoader{ds: testDataset()}, runs, &mapCache{}, m, testDefaults)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	require.NoError(t, svc.Reload(context.Background()))
	return svc, runs, m
}

func levels(history []domain.StockPoint) []float64 {
	out := make([]float64, len(history))
	for i, p := range history {
		out[i] = p.StockLevel
	}
	return out
}

func TestSimulationService_ListSKUs(t *testing.T) {
	svc, _, _ := newTestService(t)

	skus, err := svc.ListSKUs(context.Background())
	require.NoError(t, err)
	require.Len(t, skus, 3)
	assert.Equal(t, "SKU-1 - Widget", skus[0].Label())
}

func TestSimulationService_Run(t *testing.T) {
	svc, runs, m := newTestService(t)
	ctx := context.Background()

	report, err := svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1"})
	require.NoError(t, err)

	// reorder point 5*2, order quantity 5*30*1, arrival two days after day 0
	assert.Equal(t, 10.0, report.Policy.ReorderPoint)
	assert.Equal(t, 150.0, report.Policy.OrderQuantity)
	assert.Equal(t, 5.0, report.AverageDailyDemand)
	assert.Equal(t, 12.0, report.InitialStock)
	assert.InDelta(t, 12.0, report.WarningLevel, 1e-9)
	assert.Equal(t, []float64{7, 2, 147, 142, 137}, levels(report.History))
	require.Len(t, report.Orders, 1)
	assert.Equal(t, jan1, report.Orders[0].PlacedDate)
	assert.Equal(t, jan1.AddDate(0, 0, 2), report.Orders[0].ExpectedArrivalDate)
	assert.Equal(t, []domain.Delivery{{Date: jan1.AddDate(0, 0, 2), Quantity: 150}}, report.Deliveries)

	assert.Equal(t, 5, report.Summary.Days)
	assert.Equal(t, 2.0, report.Summary.Min)
	assert.Equal(t, 147.0, report.Summary.Max)
	assert.Equal(t, 2, report.Summary.DaysBelowWarning)
	assert.Equal(t, "Widget", report.SKU.SKUName)
	assert.Equal(t, jan1, report.WindowStart)
	assert.NotEmpty(t, report.RunID)

	stored, err := runs.GetRun(ctx, report.RunID)
	require.NoError(t, err)
	assert.Same(t, report, stored)

	again, err := svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1"})
	require.NoError(t, err)
	assert.Same(t, report, again, "second run is served from cache")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(metrics.ResultSuccess)))
}

func TestSimulationService_RunOverrides(t *testing.T) {
	svc, _, _ := newTestService(t)
	stock := 100.0
	days := 2

	report, err := svc.Run(context.Background(), domain.SimulationParams{
		SKUID:        "SKU-1",
		LeadTimeMode: "max",
		InitialStock: &stock,
		DisplayDays:  &days,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LeadTimeMax, report.Params.LeadTimeMode)
	assert.Equal(t, 20.0, report.Policy.ReorderPoint)
	assert.Empty(t, report.Orders)
	// trailing window of two days before the last sale
	assert.Equal(t, []float64{85, 80, 75}, levels(report.History))
	assert.Equal(t, jan1.AddDate(0, 0, 2), report.WindowStart)
}

func TestSimulationService_ExplicitZeroOverridesDefaults(t *testing.T) {
	defaults := testDefaults
	defaults.DisplayDays = 2
	svc := NewSimulationService(&staticLoader{ds: testDataset()}, nil, &mapCache{}, nil, defaults)
	ctx := context.Background()

	trimmed, err := svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1"})
	require.NoError(t, err)
	assert.Equal(t, []float64{147, 142, 137}, levels(trimmed.History))
	assert.InDelta(t, 12.0, trimmed.WarningLevel, 1e-9)

	ratio, days := 0.0, 0
	full, err := svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1", WarningRatio: &ratio, DisplayDays: &days})
	require.NoError(t, err)
	assert.NotSame(t, trimmed, full, "explicit zeros must not hit the defaulted cache entry")

	// display days 0 shows the whole run, warning ratio 0 puts the warning on the reorder point
	assert.Equal(t, []float64{7, 2, 147, 142, 137}, levels(full.History))
	assert.Equal(t, jan1, full.WindowStart)
	assert.InDelta(t, 10.0, full.WarningLevel, 1e-9)
	require.NotNil(t, full.Params.DisplayDays)
	assert.Equal(t, 0, *full.Params.DisplayDays)
}

func TestSimulationService_CountsOrdersOutsideDisplayWindow(t *testing.T) {
	svc, _, m := newTestService(t)
	days := 2

	report, err := svc.Run(context.Background(), domain.SimulationParams{SKUID: "SKU-1", DisplayDays: &days})
	require.NoError(t, err)

	// the only order is placed on day one, before the window
	assert.Empty(t, report.Orders)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlaced))
}

func TestSimulationService_ColdCompareLoadsOnce(t *testing.T) {
	loader := &staticLoader{ds: testDataset()}
	svc := NewSimulationService(loader, nil, &mapCache{}, nil, testDefaults)
	two, three := 2.0, 3.0

	results, err := svc.Compare(context.Background(), domain.SimulationParams{SKUID: "SKU-1"}, []domain.Scenario{
		{Name: "baseline"},
		{Name: "two months", OrderMonths: &two},
		{Name: "three months", OrderMonths: &three},
		{Name: "slow vendor", LeadTimeMode: domain.LeadTimeMax},
	})
	require.NoError(t, err)
	assert.Len(t, results, 4)
	assert.Equal(t, 1, loader.Calls())
}

func TestSimulationService_RunGappedSales(t *testing.T) {
	svc, _, _ := newTestService(t)

	report, err := svc.Run(context.Background(), domain.SimulationParams{SKUID: "SKU-2", OrderMonths: 1})
	require.NoError(t, err)

	// four days with demand 4, 0, 0, 4
	assert.Equal(t, 2.0, report.AverageDailyDemand)
	assert.Len(t, report.History, 4)
}

func TestSimulationService_RunErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	feb := jan1.AddDate(0, 1, 0)
	later := feb.AddDate(0, 0, 5)

	_, err := svc.Run(ctx, domain.SimulationParams{SKUID: "NOPE"})
	assert.ErrorIs(t, err, domain.ErrSKUNotFound)

	_, err = svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-3"})
	assert.ErrorIs(t, err, domain.ErrDataGap)

	_, err = svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1", StartDate: &feb, EndDate: &later})
	assert.ErrorIs(t, err, domain.ErrDataGap)

	_, err = svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1", StartDate: &later, EndDate: &feb})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1", LeadTimeMode: "median"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Run(ctx, domain.SimulationParams{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSimulationService_Compare(t *testing.T) {
	svc, _, _ := newTestService(t)
	months := 2.0
	zero := 0.0

	results, err := svc.Compare(context.Background(), domain.SimulationParams{SKUID: "SKU-1"}, []domain.Scenario{
		{Name: "baseline"},
		{Name: "double cover", OrderMonths: &months},
		{Name: "empty shelf", InitialStock: &zero},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "baseline", results[0].Name)
	assert.Equal(t, 150.0, results[0].Report.Policy.OrderQuantity)
	assert.Equal(t, 300.0, results[1].Report.Policy.OrderQuantity)
	assert.Equal(t, 0.0, results[2].Report.InitialStock)

	_, err = svc.Compare(context.Background(), domain.SimulationParams{SKUID: "SKU-1"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Compare(context.Background(), domain.SimulationParams{SKUID: "NOPE"}, []domain.Scenario{{Name: "a"}})
	assert.ErrorIs(t, err, domain.ErrSKUNotFound)
}

func TestSimulationService_DemandSeries(t *testing.T) {
	svc, _, _ := newTestService(t)

	series, err := svc.DemandSeries(context.Background(), "SKU-2", nil, nil)
	require.NoError(t, err)
	require.Len(t, series, 4)
	assert.Equal(t, 4, series[0].Quantity)
	assert.Equal(t, 0, series[1].Quantity)

	end := jan1.AddDate(0, 0, 1)
	series, err = svc.DemandSeries(context.Background(), "SKU-2", nil, &end)
	require.NoError(t, err)
	assert.Len(t, series, 2)
}

func TestSimulationService_Reload(t *testing.T) {
	loader := &staticLoader{ds: testDataset()}
	c := &mapCache{}
	svc := NewSimulationService(loader, nil, c, nil, testDefaults)
	ctx := context.Background()

	_, err := svc.Run(ctx, domain.SimulationParams{SKUID: "SKU-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, loader.Calls())
	assert.Len(t, c.reports, 1)

	require.NoError(t, svc.Reload(ctx))
	assert.Equal(t, 2, loader.Calls())
	assert.Empty(t, c.reports)

	loader.fail(errors.New("bucket unreachable"))
	assert.Error(t, svc.Reload(ctx))

	// the previous dataset stays in service
	skus, err := svc.ListSKUs(ctx)
	require.NoError(t, err)
	assert.Len(t, skus, 3)
}

func TestSimulationService_RunsWithoutRepository(t *testing.T) {
	svc := NewSimulationService(&staticLoader{ds: testDataset()}, nil, nil, nil, testDefaults)

	_, err := svc.GetRun(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	runs, err := svc.ListRuns(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
