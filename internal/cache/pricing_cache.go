package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockwise/backend/internal/config"
	"github.com/stockwise/backend/internal/domain"
)

const (
	marginsKeyPrefix     = "pricing:margins"
	marginsScanBatchSize = 100
)

// PricingCache caches the per-product margin listing per workspace/sort.
type PricingCache interface {
	GetMargins(ctx context.Context, workspaceID, sortBy string) ([]domain.ProductMargin, bool, error)
	SetMargins(ctx context.Context, workspaceID, sortBy string, margins []domain.ProductMargin) error
	InvalidateWorkspace(ctx context.Context, workspaceID string) error
}

type redisPricingCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPricingCache struct{}

func NewPricingCache(cfg config.CacheConfig) (PricingCache, error) {
	if !cfg.Enabled {
		return &noopPricingCache{}, nil
	}

	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	return &redisPricingCache{client: client, ttl: cfg.TTL()}, nil
}

func NewNoopPricingCache() PricingCache {
	return &noopPricingCache{}
}

func (c *redisPricingCache) GetMargins(ctx context.Context, workspaceID, sortBy string) ([]domain.ProductMargin, bool, error) {
	payload, err := c.client.Get(ctx, buildMarginsKey(workspaceID, sortBy)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var margins []domain.ProductMargin
	if err := json.Unmarshal(payload, &margins); err != nil {
		return nil, false, fmt.Errorf("decode margins cache: %w", err)
	}

	return margins, true, nil
}

func (c *redisPricingCache) SetMargins(ctx context.Context, workspaceID, sortBy string, margins []domain.ProductMargin) error {
	payload, err := json.Marshal(margins)
	if err != nil {
		return fmt.Errorf("encode margins cache: %w", err)
	}

	if err := c.client.Set(ctx, buildMarginsKey(workspaceID, sortBy), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateWorkspace drops every cached margin view for a workspace; called
// after a price change is recorded.
func (c *redisPricingCache) InvalidateWorkspace(ctx context.Context, workspaceID string) error {
	return deleteKeysWithPrefix(ctx, c.client, fmt.Sprintf("%s:%s:", marginsKeyPrefix, workspaceID), marginsScanBatchSize)
}

func (n *noopPricingCache) GetMargins(ctx context.Context, workspaceID, sortBy string) ([]domain.ProductMargin, bool, error) {
	return nil, false, nil
}

func (n *noopPricingCache) SetMargins(ctx context.Context, workspaceID, sortBy string, margins []domain.ProductMargin) error {
	return nil
}

func (n *noopPricingCache) InvalidateWorkspace(ctx context.Context, workspaceID string) error {
	return nil
}

func buildMarginsKey(workspaceID, sortBy string) string {
	return fmt.Sprintf("%s:%s:%s", marginsKeyPrefix, workspaceID, sortBy)
}
