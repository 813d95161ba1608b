package impl

import (
	"testing"
	"time"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/infra/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ListProducts_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.product(t, "older", "10", "0")
	env.product(t, "newer", "5", "4")

	products, err := env.catalog(nil).ListProducts(env.ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "newer", products[0].Title)
	require.NotNil(t, products[0].SubCategory)
}

func TestCatalogService_ListProducts_ServedFromCache(t *testing.T) {
	env := newTestEnv(t)
	env.product(t, "first", "10", "0")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	srv := env.catalog(cache.NewRedisCatalogCache(client, time.Minute))

	products, err := srv.ListProducts(env.ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	env.product(t, "second", "3", "0")

	products, err = srv.ListProducts(env.ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1, "the second listing comes from the cache")

	mr.FastForward(2 * time.Minute)

	products, err = srv.ListProducts(env.ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogService_ListProducts_CacheDownFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.product(t, "first", "10", "0")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	products, err := env.catalog(cache.NewRedisCatalogCache(client, time.Minute)).ListProducts(env.ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestCatalogService_ListCategories(t *testing.T) {
	env := newTestEnv(t)

	categories, err := env.catalog(nil).ListCategories(env.ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "shirts", categories[0].Name)
	require.Len(t, categories[0].SubCategories, 1)
}

func TestCatalogService_ProductDetail(t *testing.T) {
	env := newTestEnv(t)
	productID := env.product(t, "shirt", "10", "0")
	srv := env.catalog(nil)

	detail, err := srv.ProductDetail(env.ctx, env.userID, productID)
	require.NoError(t, err)
	assert.Equal(t, "shirt", detail.Product.Title)
	assert.False(t, detail.InCart)
	assert.False(t, detail.InFavorites)

	env.addToCart(t, productID, 1)
	_, err = env.favorites().ToggleFavorite(env.ctx, env.userID, productID)
	require.NoError(t, err)

	detail, err = srv.ProductDetail(env.ctx, env.userID, productID)
	require.NoError(t, err)
	assert.True(t, detail.InCart)
	assert.True(t, detail.InFavorites)

	_, err = srv.ProductDetail(env.ctx, env.userID, 404)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}
