package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db: db,
	}
}

// FindByUser returns the user's list with products newest first.
func (repo *favoriteRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Favorite, error) {
	var favoriteM model.FavoriteModel

	if err := repo.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.id DESC")
		}).
		Where("user_id = ?", userID).
		First(&favoriteM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFavoriteNotFound
		}

		return nil, errors.Wrap(err, "failed to find favorites")
	}

	products := make([]*entity.Product, 0, len(favoriteM.Products))
	for _, productM := range favoriteM.Products {
		products = append(products, toProductDomain(productM))
	}

	return &entity.Favorite{
		ID:       favoriteM.ID,
		UserID:   favoriteM.UserID,
		Products: products,
	}, nil
}

// Create inserts an empty list for the user.
func (repo *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favoriteM := &model.FavoriteModel{UserID: favorite.UserID}

	if err := repo.db.WithContext(ctx).Omit("Products").Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("favorite list already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorites")
	}

	favorite.ID = favoriteM.ID

	return nil
}

// AddProduct inserts a row into the join table.
func (repo *favoriteRepository) AddProduct(ctx context.Context, favoriteID, productID int64) error {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.FavoriteProductModel{FavoriteID: favoriteID, ProductID: productID}).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add favorite product")
	}

	return nil
}

// RemoveProduct deletes a row from the join table.
func (repo *favoriteRepository) RemoveProduct(ctx context.Context, favoriteID, productID int64) error {
	err := repo.db.WithContext(ctx).
		Where("favorite_id = ? AND product_id = ?", favoriteID, productID).
		Delete(&model.FavoriteProductModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove favorite product")
	}

	return nil
}
