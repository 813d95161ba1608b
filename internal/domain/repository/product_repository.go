package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository reads the catalog.
type ProductRepository interface {
	// ListProducts returns every product, newest first, with its sub-category.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// FindProductByID returns a product with sub-category and images.
	FindProductByID(ctx context.Context, id int64) (*entity.Product, error)

	// ListCategories returns all categories with their sub-categories.
	ListCategories(ctx context.Context) ([]*entity.ProductCategory, error)
}
