// Package cache provides the Redis-backed catalog read cache.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	productsKey   = "catalog:products"
	categoriesKey = "catalog:categories"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New returns a Redis cache when redis.addr is configured and a no-op cache otherwise.
func New(params Params) service.CatalogCache {
	redisCfg := params.Config.Redis
	if redisCfg == nil || redisCfg.Addr == "" {
		params.Logger.Info("Catalog cache disabled")

		return NewNoopCatalogCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			// The storefront still works from the database when Redis is down.
			if err := client.Ping(ctx).Err(); err != nil {
				params.Logger.Warn("Redis ping failed, catalog cache will miss", slog.Any("error", err))
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return NewRedisCatalogCache(client, redisCfg.CatalogTTL)
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCatalogCache stores catalog listings as JSON with the given TTL.
func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) service.CatalogCache {
	return &redisCatalogCache{client: client, ttl: ttl}
}

func (c *redisCatalogCache) GetProducts(ctx context.Context) ([]*entity.Product, bool, error) {
	var products []*entity.Product
	ok, err := c.get(ctx, productsKey, &products)

	return products, ok, err
}

func (c *redisCatalogCache) SetProducts(ctx context.Context, products []*entity.Product) error {
	return c.set(ctx, productsKey, products)
}

func (c *redisCatalogCache) GetCategories(ctx context.Context) ([]*entity.ProductCategory, bool, error) {
	var categories []*entity.ProductCategory
	ok, err := c.get(ctx, categoriesKey, &categories)

	return categories, ok, err
}

func (c *redisCatalogCache) SetCategories(ctx context.Context, categories []*entity.ProductCategory) error {
	return c.set(ctx, categoriesKey, categories)
}

// Invalidate drops every cached listing.
func (c *redisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productsKey, categoriesKey).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate catalog cache")
	}

	return nil
}

func (c *redisCatalogCache) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		// A payload written by an older build is treated as a miss.
		return false, nil
	}

	return true, nil
}

func (c *redisCatalogCache) set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}

	return nil
}

type noopCatalogCache struct{}

// NewNoopCatalogCache always misses.
func NewNoopCatalogCache() service.CatalogCache {
	return noopCatalogCache{}
}

func (noopCatalogCache) GetProducts(context.Context) ([]*entity.Product, bool, error) {
	return nil, false, nil
}

func (noopCatalogCache) SetProducts(context.Context, []*entity.Product) error { return nil }

func (noopCatalogCache) GetCategories(context.Context) ([]*entity.ProductCategory, bool, error) {
	return nil, false, nil
}

func (noopCatalogCache) SetCategories(context.Context, []*entity.ProductCategory) error { return nil }

func (noopCatalogCache) Invalidate(context.Context) error { return nil }
