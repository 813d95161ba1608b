package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrFavoriteNotFound is returned when the user has no favorites row yet.
var ErrFavoriteNotFound = errors.New("favorite list not found")

// FavoriteRepository manages a user's favorites list.
type FavoriteRepository interface {
	// FindByUser returns the user's list with its products.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Favorite, error)

	// Create inserts an empty list for the user.
	Create(ctx context.Context, favorite *entity.Favorite) error

	AddProduct(ctx context.Context, favoriteID, productID int64) error
	RemoveProduct(ctx context.Context, favoriteID, productID int64) error
}
