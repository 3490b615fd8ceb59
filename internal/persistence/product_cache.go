package persistence

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/product-store/internal/domain"
)

const productCacheKeyPrefix = "product:"

// ProductCache is a Redis-backed read-through cache for catalog entries.
// Cache failures degrade to database reads and never surface as errors.
type ProductCache struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewProductCache builds the cache.
func NewProductCache(redis *Redis, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{redis: redis, ttl: ttl, logger: logger}
}

// Get returns a cached product, or false on miss or cache failure.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, productCacheKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		c.logger.Debug("corrupt product cache entry", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	return &product, true
}

// Set stores a product snapshot.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) {
	if c == nil || c.redis == nil || c.redis.Client == nil || product == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, productCacheKeyPrefix+product.ID, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("product cache set failed", zap.String("id", product.ID), zap.Error(err))
	}
}

// Invalidate drops a cached product.
func (c *ProductCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, productCacheKeyPrefix+id).Err(); err != nil {
		c.logger.Debug("product cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}
