package impl

import (
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_ToggleFavorite(t *testing.T) {
	env := newTestEnv(t)
	shirt := env.product(t, "shirt", "10", "0")
	socks := env.product(t, "socks", "3", "0")
	srv := env.favorites()

	products, err := srv.ListFavorites(env.ctx, env.userID)
	require.NoError(t, err)
	assert.Empty(t, products)

	result, err := srv.ToggleFavorite(env.ctx, env.userID, shirt)
	require.NoError(t, err)
	assert.Equal(t, msgFavoriteAdded, result.Message)
	assert.Equal(t, usecase.RedirectBack, result.Redirect)

	_, err = srv.ToggleFavorite(env.ctx, env.userID, socks)
	require.NoError(t, err)

	products, err = srv.ListFavorites(env.ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, socks, products[0].ID)

	result, err = srv.ToggleFavorite(env.ctx, env.userID, shirt)
	require.NoError(t, err)
	assert.Equal(t, usecase.StatusInfo, result.Status)
	assert.Equal(t, msgFavoriteRemoved, result.Message)

	products, err = srv.ListFavorites(env.ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, socks, products[0].ID)
}

func TestFavoriteService_ToggleFavorite_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.favorites().ToggleFavorite(env.ctx, env.userID, 404)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	products, err := env.favorites().ListFavorites(env.ctx, env.userID)
	require.NoError(t, err)
	assert.Empty(t, products, "a rejected toggle does not create the list")
}
