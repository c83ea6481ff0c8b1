package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/andresuchdata/inventory-flow/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	simulationKeyPrefix     = "simulation:report"
	simulationScanBatchSize = 100
)

// SimulationCache stores finished simulation reports keyed by their request
type SimulationCache interface {
	Get(ctx context.Context, params domain.SimulationParams) (*domain.SimulationReport, bool, error)
	Set(ctx context.Context, params domain.SimulationParams, report *domain.SimulationReport) error
	InvalidateSKU(ctx context.Context, sku string) error
	InvalidateAll(ctx context.Context) error
}

type redisSimulationCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSimulationCache struct{}

// NewSimulationCache returns a redis backed cache, or a no-op one when caching is disabled
func NewSimulationCache(ctx context.Context, cfg config.CacheConfig) (SimulationCache, error) {
	if !cfg.Enabled {
		return &noopSimulationCache{}, nil
	}

	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &redisSimulationCache{client: client, ttl: ttl}, nil
}

func NewNoopSimulationCache() SimulationCache {
	return &noopSimulationCache{}
}

func (c *redisSimulationCache) Get(ctx context.Context, params domain.SimulationParams) (*domain.SimulationReport, bool, error) {
	payload, err := c.client.Get(ctx, BuildSimulationKey(params)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.SimulationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode simulation cache: %w", err)
	}
	return &report, true, nil
}

func (c *redisSimulationCache) Set(ctx context.Context, params domain.SimulationParams, report *domain.SimulationReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode simulation cache: %w", err)
	}
	if err := c.client.Set(ctx, BuildSimulationKey(params), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSimulationCache) InvalidateSKU(ctx context.Context, sku string) error {
	_, err := deleteKeysWithPrefix(ctx, c.client, skuKeyPrefix(sku), simulationScanBatchSize)
	return err
}

func (c *redisSimulationCache) InvalidateAll(ctx context.Context) error {
	n, err := deleteKeysWithPrefix(ctx, c.client, simulationKeyPrefix, simulationScanBatchSize)
	if err == nil {
		log.Debug().Int("keys", n).Msg("cache: simulation reports invalidated")
	}
	return err
}

func (n *noopSimulationCache) Get(ctx context.Context, params domain.SimulationParams) (*domain.SimulationReport, bool, error) {
	return nil, false, nil
}

func (n *noopSimulationCache) Set(ctx context.Context, params domain.SimulationParams, report *domain.SimulationReport) error {
	return nil
}

func (n *noopSimulationCache) InvalidateSKU(ctx context.Context, sku string) error {
	return nil
}

func (n *noopSimulationCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func skuKeyPrefix(sku string) string {
	return fmt.Sprintf("%s:%s:", simulationKeyPrefix, sku)
}

// BuildSimulationKey derives a stable cache key from the resolved request
func BuildSimulationKey(params domain.SimulationParams) string {
	return skuKeyPrefix(params.SKUID) + simulationParamsHash(params)
}

func simulationParamsHash(p domain.SimulationParams) string {
	parts := []string{
		"mode=" + string(p.LeadTimeMode),
		fmt.Sprintf("order_months=%.4f", p.OrderMonths),
		fmt.Sprintf("warning_ratio=%.4f", p.Ratio()),
		fmt.Sprintf("display_days=%d", p.Days()),
	}
	if p.InitialStock != nil {
		parts = append(parts, fmt.Sprintf("initial_stock=%.4f", *p.InitialStock))
	}
	if p.StartDate != nil {
		parts = append(parts, "start="+domain.Day(*p.StartDate).Format("2006-01-02"))
	}
	if p.EndDate != nil {
		parts = append(parts, "end="+domain.Day(*p.EndDate).Format("2006-01-02"))
	}

	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
