package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogCache holds read-mostly catalog listings.
// A miss is reported with ok=false; errors are reserved for a broken backend.
type CatalogCache interface {
	GetProducts(ctx context.Context) (products []*entity.Product, ok bool, err error)
	SetProducts(ctx context.Context, products []*entity.Product) error
	GetCategories(ctx context.Context) (categories []*entity.ProductCategory, ok bool, err error)
	SetCategories(ctx context.Context, categories []*entity.ProductCategory) error
	Invalidate(ctx context.Context) error
}
