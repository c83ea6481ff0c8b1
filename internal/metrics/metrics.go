package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "inventory_flow_"

	ResultSuccess = "success"
	ResultError   = "error"

	cacheHit  = "hit"
	cacheMiss = "miss"
)

// Metrics bundles simulation metrics.
type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	CacheLookups *prometheus.CounterVec
	OrdersPlaced prometheus.Counter
	DatasetLoads *prometheus.CounterVec
	DatasetSKUs  prometheus.Gauge
}

// New constructs metrics and registers them on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulation_runs_total",
				Help: "Total simulation runs by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "simulation_duration_seconds",
			Help:    "Simulation run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulation_cache_lookups_total",
				Help: "Simulation cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "simulated_orders_total",
			Help: "Total replenishment orders placed by simulations",
		}),
		DatasetLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "dataset_loads_total",
				Help: "Dataset loads by result",
			},
			[]string{"result"},
		),
		DatasetSKUs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "dataset_skus",
			Help: "Selectable SKUs in the loaded dataset",
		}),
	}
	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.CacheLookups,
		m.OrdersPlaced,
		m.DatasetLoads,
		m.DatasetSKUs,
	)
	return m
}

// ObserveRun records the outcome of one simulation run.
func (m *Metrics) ObserveRun(start time.Time, orders int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.RunsTotal.WithLabelValues(ResultError).Inc()
		return
	}
	m.RunsTotal.WithLabelValues(ResultSuccess).Inc()
	m.RunDuration.Observe(time.Since(start).Seconds())
	m.OrdersPlaced.Add(float64(orders))
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheLookups.WithLabelValues(cacheHit).Inc()
		return
	}
	m.CacheLookups.WithLabelValues(cacheMiss).Inc()
}

func (m *Metrics) ObserveDatasetLoad(skus int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DatasetLoads.WithLabelValues(ResultError).Inc()
		return
	}
	m.DatasetLoads.WithLabelValues(ResultSuccess).Inc()
	m.DatasetSKUs.Set(float64(skus))
}
