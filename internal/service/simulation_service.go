// backend-go/internal/service/simulation_service.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/cache"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/dataset"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/metrics"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/repository"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/simulation"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const compareConcurrency = 4

type SimulationService struct {
	loader   repository.DatasetRepository
	runs     repository.SimulationRunRepository
	cache    cache.SimulationCache
	metrics  *metrics.Metrics
	defaults domain.SimulationDefaults
	now      func() time.Time

	loadMu sync.Mutex // serializes dataset loads
	mu     sync.RWMutex
	ds     *dataset.Dataset
}

// NewSimulationService wires the engine to its dataset source. runs and m may be nil.
func NewSimulationService(
	loader repository.DatasetRepository,
	runs repository.SimulationRunRepository,
	cacheImpl cache.SimulationCache,
	m *metrics.Metrics,
	defaults domain.SimulationDefaults,
) *SimulationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSimulationCache()
	}
	return &SimulationService{
		loader:   loader,
		runs:     runs,
		cache:    cacheImpl,
		metrics:  m,
		defaults: defaults,
		now:      time.Now,
	}
}

// Reload fetches the dataset again and drops every cached report
func (s *SimulationService) Reload(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.reload(ctx)
}

func (s *SimulationService) reload(ctx context.Context) error {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.ObserveDatasetLoad(0, err)
		return errors.Wrap(err, "load dataset")
	}
	skus := ds.SKUs()
	s.metrics.ObserveDatasetLoad(len(skus), nil)

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("simulation: cache invalidate failed")
	}

	log.Info().Int("skus", len(skus)).Int("sales", len(ds.Sales())).Msg("simulation: dataset ready")
	return nil
}

// Dataset returns the loaded dataset, loading it once on first use
func (s *SimulationService) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if ds := s.current(); ds != nil {
		return ds, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	// another caller may have finished the load while we waited
	if ds := s.current(); ds != nil {
		return ds, nil
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s.current(), nil
}

func (s *SimulationService) current() *dataset.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

func (s *SimulationService) ListSKUs(ctx context.Context) ([]domain.SKUOption, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return ds.SKUs(), nil
}

// DemandSeries builds the daily demand of a SKU. Nil bounds fall back to its first and last sale.
func (s *SimulationService) DemandSeries(ctx context.Context, skuID string, start, end *time.Time) ([]domain.DemandPoint, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := ds.InventoryFor(skuID); err != nil {
		return nil, err
	}

	sales := ds.SalesFor(skuID)
	from, to, err := resolveRange(sales, skuID, start, end)
	if err != nil {
		return nil, err
	}
	return simulation.BuildDemandSeries(sales, skuID, from, to)
}

// Run resolves params against the configured defaults and simulates one SKU
func (s *SimulationService) Run(ctx context.Context, params domain.SimulationParams) (*domain.SimulationReport, error) {
	params, err := s.resolve(params)
	if err != nil {
		return nil, err
	}

	if cached, ok, err := s.cache.Get(ctx, params); err == nil && ok {
		s.metrics.ObserveCache(true)
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("sku", params.SKUID).Msg("simulation: cache get failed")
	}
	s.metrics.ObserveCache(false)

	start := s.now()
	report, placed, err := s.simulate(ctx, params)
	if err != nil {
		s.metrics.ObserveRun(start, 0, err)
		return nil, err
	}
	// every order of the run counts, not only those inside the display window
	s.metrics.ObserveRun(start, placed, nil)

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, report); err != nil {
			log.Warn().Err(err).Str("run_id", report.RunID).Msg("simulation: persist run failed")
		}
	}
	if err := s.cache.Set(ctx, params, report); err != nil {
		log.Warn().Err(err).Str("sku", params.SKUID).Msg("simulation: cache set failed")
	}

	log.Debug().
		Str("run_id", report.RunID).
		Str("sku", params.SKUID).
		Int("orders", len(report.Orders)).
		Float64("reorder_point", report.Policy.ReorderPoint).
		Msg("simulation: run complete")

	return report, nil
}

// Compare runs each scenario on top of base concurrently, keeping the scenario order
func (s *SimulationService) Compare(ctx context.Context, base domain.SimulationParams, scenarios []domain.Scenario) ([]domain.ScenarioResult, error) {
	if len(scenarios) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidInput, "at least one scenario is required")
	}
	if len(scenarios) > domain.MaxScenarios {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "at most %d scenarios are allowed, got %d", domain.MaxScenarios, len(scenarios))
	}
	for i, sc := range scenarios {
		if sc.Name == "" {
			return nil, errors.Wrapf(domain.ErrInvalidInput, "scenario %d has no name", i)
		}
	}

	results := make([]domain.ScenarioResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)
	for i, sc := range scenarios {
		g.Go(func() error {
			report, err := s.Run(gctx, sc.Apply(base))
			if err != nil {
				return errors.WithMessagef(err, "scenario %q", sc.Name)
			}
			results[i] = domain.ScenarioResult{Name: sc.Name, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *SimulationService) GetRun(ctx context.Context, id string) (*domain.SimulationReport, error) {
	if s.runs == nil {
		return nil, errors.Wrap(domain.ErrRunNotFound, "run history is disabled")
	}
	return s.runs.GetRun(ctx, id)
}

func (s *SimulationService) ListRuns(ctx context.Context, skuID string, limit int) ([]domain.SimulationRun, error) {
	if s.runs == nil {
		return []domain.SimulationRun{}, nil
	}
	return s.runs.ListRuns(ctx, skuID, limit)
}

func (s *SimulationService) resolve(params domain.SimulationParams) (domain.SimulationParams, error) {
	params = params.WithDefaults(s.defaults)
	mode, err := domain.ParseLeadTimeMode(string(params.LeadTimeMode))
	if err != nil {
		return params, err
	}
	params.LeadTimeMode = mode
	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

// simulate builds the report and also returns how many orders the full run placed
func (s *SimulationService) simulate(ctx context.Context, params domain.SimulationParams) (*domain.SimulationReport, int, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, 0, err
	}

	inv, err := ds.InventoryFor(params.SKUID)
	if err != nil {
		return nil, 0, err
	}
	sales := ds.SalesFor(params.SKUID)
	from, to, err := resolveRange(sales, params.SKUID, params.StartDate, params.EndDate)
	if err != nil {
		return nil, 0, err
	}

	series, err := simulation.BuildDemandSeries(sales, params.SKUID, from, to)
	if err != nil {
		return nil, 0, err
	}
	avg := simulation.AverageDailyDemand(series)

	leadTime := inv.LeadTime()
	policy, err := simulation.DerivePolicy(leadTime, params.LeadTimeMode, params.OrderMonths, avg)
	if err != nil {
		return nil, 0, errors.WithMessagef(err, "sku %s", params.SKUID)
	}

	initial := inv.CurrentStockQuantity
	if params.InitialStock != nil {
		initial = *params.InitialStock
	}

	result, err := simulation.Simulate(series, initial, policy)
	if err != nil {
		return nil, 0, err
	}

	windowStart := simulation.LastNDays(to, params.Days())
	if windowStart.Before(from) {
		windowStart = from
	}
	window := simulation.Window(result, windowStart, to)

	warning := simulation.WarningLevel(policy, params.Ratio())
	summary, err := simulation.SummarizeWithWarning(window.History, warning)
	if err != nil {
		return nil, 0, err
	}

	report := &domain.SimulationReport{
		RunID:              uuid.NewString(),
		SKU:                domain.SKUOption{SKUID: params.SKUID, SKUName: ds.SKUName(params.SKUID)},
		Params:             params,
		LeadTime:           leadTime,
		Policy:             policy,
		AverageDailyDemand: avg,
		InitialStock:       initial,
		WarningLevel:       warning,
		WindowStart:        window.Start,
		WindowEnd:          window.End,
		History:            window.History,
		Orders:             window.Orders,
		Deliveries:         window.Deliveries,
		Summary:            summary,
		CreatedAt:          s.now().UTC(),
	}
	if report.Orders == nil {
		report.Orders = []domain.OrderEvent{}
	}
	if report.Deliveries == nil {
		report.Deliveries = []domain.Delivery{}
	}
	return report, result.Ledger().Len(), nil
}

func resolveRange(sales []domain.SalesRecord, skuID string, start, end *time.Time) (time.Time, time.Time, error) {
	if start != nil && end != nil {
		return domain.Day(*start), domain.Day(*end), nil
	}

	first, last, err := simulation.SalesRange(sales, skuID)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start != nil {
		first = domain.Day(*start)
	}
	if end != nil {
		last = domain.Day(*end)
	}
	if first.After(last) {
		return time.Time{}, time.Time{}, errors.Wrapf(domain.ErrInvalidInput, "start date %s is after end date %s",
			first.Format("2006-01-02"), last.Format("2006-01-02"))
	}
	return first, last, nil
}
