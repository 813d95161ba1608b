package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type catalogService struct {
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	favoriteRepo repository.FavoriteRepository
	cache        service.CatalogCache
	metrics      service.StorefrontMetrics
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository
	FavoriteRepo repository.FavoriteRepository
	Cache        service.CatalogCache
	Metrics      service.StorefrontMetrics
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo:  params.ProductRepo,
		orderRepo:    params.OrderRepo,
		favoriteRepo: params.FavoriteRepo,
		cache:        params.Cache,
		metrics:      params.Metrics,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts serves the listing from the cache, loading it from the database on a miss.
// A failing cache is logged and bypassed.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, ok, err := srv.cache.GetProducts(ctx)
	if err != nil {
		srv.log(ctx).Warn("Catalog cache read failed", slog.Any("error", err))
	}
	srv.metrics.CacheLookup(ok)
	if ok {
		return products, nil
	}

	products, err = srv.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	if err := srv.cache.SetProducts(ctx, products); err != nil {
		srv.log(ctx).Warn("Catalog cache write failed", slog.Any("error", err))
	}

	return products, nil
}

// ListCategories returns categories with their sub-categories, cached like products.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.ProductCategory, error) {
	categories, ok, err := srv.cache.GetCategories(ctx)
	if err != nil {
		srv.log(ctx).Warn("Category cache read failed", slog.Any("error", err))
	}
	srv.metrics.CacheLookup(ok)
	if ok {
		return categories, nil
	}

	categories, err = srv.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	if err := srv.cache.SetCategories(ctx, categories); err != nil {
		srv.log(ctx).Warn("Category cache write failed", slog.Any("error", err))
	}

	return categories, nil
}

// ProductDetail loads one product and whether the user already has it in the cart or favorites.
func (srv *catalogService) ProductDetail(ctx context.Context, userID uuid.UUID, productID int64) (*usecase.ProductDetailOutput, error) {
	product, err := srv.productRepo.FindProductByID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage("product detail")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	output := &usecase.ProductDetailOutput{Product: product}

	order, err := srv.orderRepo.FindOpenOrder(ctx, userID)
	switch {
	case err == nil:
		output.InCart = order.LineFor(productID) != nil
	case !errors.Is(err, repository.ErrOrderNotFound):
		return nil, errors.Wrap(err, "failed to find open order")
	}

	favorite, err := srv.favoriteRepo.FindByUser(ctx, userID)
	switch {
	case err == nil:
		output.InFavorites = favorite.Contains(productID)
	case !errors.Is(err, repository.ErrFavoriteNotFound):
		return nil, errors.Wrap(err, "failed to find favorites")
	}

	return output, nil
}
