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

	"github.com/redis/go-redis/v9"
	"github.com/stockwise/backend/internal/config"
	"github.com/stockwise/backend/internal/domain"
)

const (
	forecastKeyPrefix     = "forecast:demand"
	forecastScanBatchSize = 100
)

// ForecastCache caches computed demand forecasts per workspace/filter.
type ForecastCache interface {
	GetForecasts(ctx context.Context, workspaceID string, days int, productIDs []string) ([]domain.DemandForecast, bool, error)
	SetForecasts(ctx context.Context, workspaceID string, days int, productIDs []string, forecasts []domain.DemandForecast) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{client: client, ttl: cfg.TTL()}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) GetForecasts(ctx context.Context, workspaceID string, days int, productIDs []string) ([]domain.DemandForecast, bool, error) {
	key := buildForecastKey(workspaceID, days, productIDs)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var forecasts []domain.DemandForecast
	if err := json.Unmarshal(payload, &forecasts); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return forecasts, true, nil
}

func (c *redisForecastCache) SetForecasts(ctx context.Context, workspaceID string, days int, productIDs []string, forecasts []domain.DemandForecast) error {
	key := buildForecastKey(workspaceID, days, productIDs)
	payload, err := json.Marshal(forecasts)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, forecastScanBatchSize)
}

func (n *noopForecastCache) GetForecasts(ctx context.Context, workspaceID string, days int, productIDs []string) ([]domain.DemandForecast, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) SetForecasts(ctx context.Context, workspaceID string, days int, productIDs []string, forecasts []domain.DemandForecast) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildForecastKey(workspaceID string, days int, productIDs []string) string {
	return fmt.Sprintf("%s:%s", forecastKeyPrefix, filterHash(workspaceID, fmt.Sprintf("days=%d", days), productIDs))
}

// filterHash produces a stable key component from a workspace id, extra
// key=value parts, and an id filter; id order must not matter.
func filterHash(workspaceID string, extra string, ids []string) string {
	parts := []string{"workspace=" + strings.TrimSpace(workspaceID)}
	if extra != "" {
		parts = append(parts, extra)
	}

	if len(ids) > 0 {
		normalized := make([]string, 0, len(ids))
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			normalized = append(normalized, id)
		}
		if len(normalized) > 0 {
			sort.Strings(normalized)
			parts = append(parts, "ids="+strings.Join(normalized, ","))
		}
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
