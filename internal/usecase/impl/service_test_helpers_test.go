package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/metrics"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/persistence/sqlitetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires services against one in-memory database.
type testEnv struct {
	ctx       context.Context
	db        *gorm.DB
	txManager repository.TransactionManager
	metrics   *metrics.Recorder
	logger    *slog.Logger
	userID    uuid.UUID
	subID     int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := sqlitetest.New(t)

	return &testEnv{
		ctx:       context.Background(),
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		metrics:   metrics.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		userID:    sqlitetest.SeedUser(t, db, "alice"),
		subID:     sqlitetest.SeedCategory(t, db, "shirts"),
	}
}

func (env *testEnv) product(t *testing.T, title, price, discount string) int64 {
	t.Helper()

	return sqlitetest.SeedProduct(t, env.db, env.subID, title, price, discount)
}

func (env *testEnv) cart() *cartService {
	return NewCartService(CartServiceParams{
		TxManager: env.txManager,
		OrderRepo: postgres.NewOrderRepository(env.db),
		Metrics:   env.metrics,
		Logger:    env.logger,
	}).(*cartService)
}

func (env *testEnv) checkout() *checkoutService {
	return NewCheckoutService(CheckoutServiceParams{
		TxManager:   env.txManager,
		OrderRepo:   postgres.NewOrderRepository(env.db),
		AddressRepo: postgres.NewAddressRepository(env.db),
		UserRepo:    postgres.NewUserRepository(env.db),
		Metrics:     env.metrics,
		Logger:      env.logger,
	}).(*checkoutService)
}

func (env *testEnv) orders() *orderService {
	return NewOrderService(OrderServiceParams{
		TxManager: env.txManager,
		Metrics:   env.metrics,
		Logger:    env.logger,
	}).(*orderService)
}

func (env *testEnv) favorites() *favoriteService {
	return NewFavoriteService(FavoriteServiceParams{
		TxManager:    env.txManager,
		FavoriteRepo: postgres.NewFavoriteRepository(env.db),
		Logger:       env.logger,
	}).(*favoriteService)
}

func (env *testEnv) catalog(catalogCache service.CatalogCache) *catalogService {
	if catalogCache == nil {
		catalogCache = cache.NewNoopCatalogCache()
	}

	return NewCatalogService(CatalogServiceParams{
		ProductRepo:  postgres.NewProductRepository(env.db),
		OrderRepo:    postgres.NewOrderRepository(env.db),
		FavoriteRepo: postgres.NewFavoriteRepository(env.db),
		Cache:        catalogCache,
		Metrics:      env.metrics,
		Logger:       env.logger,
	}).(*catalogService)
}

// openOrder loads the user's current order, failing the test when there is none.
func (env *testEnv) openOrder(t *testing.T) *entity.Order {
	t.Helper()

	order, err := postgres.NewOrderRepository(env.db).FindOpenOrder(env.ctx, env.userID)
	require.NoError(t, err)

	return order
}

// addToCart adds productID n times.
func (env *testEnv) addToCart(t *testing.T, productID int64, n int) {
	t.Helper()

	srv := env.cart()
	for range n {
		_, err := srv.AddToCart(env.ctx, env.userID, productID)
		require.NoError(t, err)
	}
}
