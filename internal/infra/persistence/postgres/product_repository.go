package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// ListProducts returns the catalog newest first.
func (repo *productRepository) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("SubCategory").
		Order("id DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// FindProductByID retrieves a product with its sub-category and images.
func (repo *productRepository) FindProductByID(ctx context.Context, id int64) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("SubCategory").
		Preload("Images").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// ListCategories returns every category with its sub-categories.
func (repo *productRepository) ListCategories(ctx context.Context) ([]*entity.ProductCategory, error) {
	var categoryModels []*model.ProductCategoryModel

	if err := repo.db.WithContext(ctx).
		Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("id ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.ProductCategory, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]*entity.ImageContent, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, &entity.ImageContent{
			ID:        img.ID,
			OwnerID:   img.OwnerID,
			Path:      img.Path,
			CreatedAt: img.CreatedAt,
		})
	}

	return &entity.Product{
		ID:             data.ID,
		Title:          data.Title,
		Poster:         data.Poster,
		Price:          data.Price,
		DiscountPrice:  data.DiscountPrice,
		QuantityOnHand: data.QuantityOnHand,
		Label:          entity.Label(data.Label),
		Slug:           data.Slug,
		Description:    data.Description,
		SubCategoryID:  data.SubCategoryID,
		SubCategory:    toSubCategoryDomain(data.SubCategory),
		Images:         images,
		CreatedAt:      data.CreatedAt,
	}
}

func toSubCategoryDomain(data *model.SubCategoryModel) *entity.SubCategory {
	if data == nil {
		return nil
	}

	return &entity.SubCategory{
		ID:         data.ID,
		CategoryID: data.CategoryID,
		Name:       data.Name,
		Slug:       data.Slug,
	}
}

func toCategoryDomain(data *model.ProductCategoryModel) *entity.ProductCategory {
	subs := make([]*entity.SubCategory, 0, len(data.SubCategories))
	for i := range data.SubCategories {
		subs = append(subs, toSubCategoryDomain(&data.SubCategories[i]))
	}

	return &entity.ProductCategory{
		ID:            data.ID,
		Name:          data.Name,
		Slug:          data.Slug,
		SubCategories: subs,
	}
}
