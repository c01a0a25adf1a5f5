package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"clothing-mall/internal/model"
	"clothing-mall/internal/service"

	"github.com/redis/go-redis/v9"
)

// CatalogCache fronts the catalog's read paths with Redis. Every cache
// failure falls through to the database, so the cache is strictly an
// optimization.
type CatalogCache struct {
	catalog *service.CatalogService
	redis   *redis.Client
	ttl     time.Duration
}

func NewCatalogCache(catalog *service.CatalogService, rdb *redis.Client) *CatalogCache {
	return &CatalogCache{
		catalog: catalog,
		redis:   rdb,
		ttl:     5 * time.Minute,
	}
}

// ListAvailableWithStock serves the storefront listing from cache when
// possible.
func (c *CatalogCache) ListAvailableWithStock(ctx context.Context) ([]model.Product, error) {
	return c.cachedList(ctx, "products:available", func() ([]model.Product, error) {
		return c.catalog.ListAvailableWithStock()
	})
}

// ListByCategory serves a category listing from cache when possible. Only
// the available-products view is cached; the unfiltered vendor view always
// hits the database.
func (c *CatalogCache) ListByCategory(ctx context.Context, category string, onlyAvailable bool) ([]model.Product, error) {
	if !onlyAvailable {
		return c.catalog.ListByCategory(category, false)
	}
	key := fmt.Sprintf("products:category:%s", category)
	return c.cachedList(ctx, key, func() ([]model.Product, error) {
		return c.catalog.ListByCategory(category, true)
	})
}

func (c *CatalogCache) cachedList(ctx context.Context, key string, load func() ([]model.Product, error)) ([]model.Product, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var products []model.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Printf("unmarshal cached %s failed, falling back to DB: %v", key, err)
	case errors.Is(err, redis.Nil):
	default:
		log.Printf("redis error on %s, falling back to DB: %v", key, err)
	}

	products, err := load()
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(products); err == nil {
		if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
			log.Printf("cache %s: %v", key, err)
		}
	}
	return products, nil
}

// Invalidate drops the cached listings touched by a catalog or inventory
// mutation.
func (c *CatalogCache) Invalidate(ctx context.Context, category string) {
	keys := []string{"products:available"}
	if category != "" {
		keys = append(keys, fmt.Sprintf("products:category:%s", category))
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("invalidate catalog cache: %v", err)
	}
}
