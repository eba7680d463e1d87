package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talvik-analytics/shipkpi/internal/config"
	"github.com/talvik-analytics/shipkpi/internal/domain"
)

const (
	resultKeyPrefix = "calc:result"
	scanBatchSize   = 100
)

// CalcKey identifies one calculation: a dataset/sheet pair plus the full
// configuration it ran under. Two runs with equal keys produce equal
// results, so the cached bundle can be served as-is.
type CalcKey struct {
	Dataset   string
	Sheet     string
	HeaderRow int
	Mapping   domain.FieldMapping
	Rules     domain.RulesConfig
	Filters   domain.FiltersConfig
}

// ResultCache stores calculation results keyed by their full input
// fingerprint.
type ResultCache interface {
	Get(ctx context.Context, key CalcKey) (*domain.CalculationResult, bool, error)
	Set(ctx context.Context, key CalcKey, result *domain.CalculationResult) error
	InvalidateAll(ctx context.Context) error
}

type redisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopResultCache struct{}

// NewResultCache returns a redis-backed cache, or a noop cache when caching
// is disabled in the config.
func NewResultCache(cfg config.CacheConfig) (ResultCache, error) {
	if !cfg.Enabled {
		return &noopResultCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisResultCache{client: client, ttl: ttl}, nil
}

func NewNoopResultCache() ResultCache {
	return &noopResultCache{}
}

func (c *redisResultCache) Get(ctx context.Context, key CalcKey) (*domain.CalculationResult, bool, error) {
	payload, err := c.client.Get(ctx, buildResultKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.CalculationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode calculation result cache: %w", err)
	}
	return &result, true, nil
}

func (c *redisResultCache) Set(ctx context.Context, key CalcKey, result *domain.CalculationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode calculation result cache: %w", err)
	}

	if err := c.client.Set(ctx, buildResultKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisResultCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, resultKeyPrefix, scanBatchSize)
}

func (c *noopResultCache) Get(ctx context.Context, key CalcKey) (*domain.CalculationResult, bool, error) {
	return nil, false, nil
}

func (c *noopResultCache) Set(ctx context.Context, key CalcKey, result *domain.CalculationResult) error {
	return nil
}

func (c *noopResultCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildResultKey(key CalcKey) string {
	payload, err := json.Marshal(key)
	if err != nil {
		payload = []byte(key.Dataset + "/" + key.Sheet)
	}
	sum := sha1.Sum(payload)
	return fmt.Sprintf("%s:%s", resultKeyPrefix, hex.EncodeToString(sum[:]))
}
