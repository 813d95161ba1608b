package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// ProductDetailOutput is the product page view.
type ProductDetailOutput struct {
	Product     *entity.Product
	InCart      bool
	InFavorites bool
}

// CatalogUsecase serves the read side of the store.
type CatalogUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.ProductCategory, error)
	ProductDetail(ctx context.Context, userID uuid.UUID, productID int64) (*ProductDetailOutput, error)
}
