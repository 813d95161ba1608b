package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// FavoriteUsecase manages the user's wish list.
type FavoriteUsecase interface {
	ToggleFavorite(ctx context.Context, userID uuid.UUID, productID int64) (*Result, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error)
}
