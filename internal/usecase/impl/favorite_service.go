package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	msgFavoriteAdded   = "Product added to favorites."
	msgFavoriteRemoved = "Product removed from favorites."
)

type favoriteService struct {
	txManager    repository.TransactionManager
	favoriteRepo repository.FavoriteRepository
	logger       *slog.Logger
}

// FavoriteServiceParams holds dependencies for FavoriteService, injected by Fx.
type FavoriteServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	FavoriteRepo repository.FavoriteRepository
	Logger       *slog.Logger
}

// NewFavoriteService is the constructor for favoriteService.
func NewFavoriteService(params FavoriteServiceParams) usecase.FavoriteUsecase {
	return &favoriteService{
		txManager:    params.TxManager,
		favoriteRepo: params.FavoriteRepo,
		logger:       params.Logger,
	}
}

func (srv *favoriteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ToggleFavorite adds the product when absent and removes it when present.
// The first call for a user creates the list with the product in it.
func (srv *favoriteService) ToggleFavorite(ctx context.Context, userID uuid.UUID, productID int64) (*usecase.Result, error) {
	result, err := executeForResult(ctx, srv.txManager, func(factory repository.RepositoryFactory) (*usecase.Result, error) {
		favoriteRepo := factory.NewFavoriteRepository()

		if _, err := factory.NewProductRepository().FindProductByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound.WrapMessage("toggle favorite")
			}

			return nil, errors.Wrap(err, "failed to find product")
		}

		favorite, err := favoriteRepo.FindByUser(ctx, userID)
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			favorite = &entity.Favorite{UserID: userID}
			if err := favoriteRepo.Create(ctx, favorite); err != nil {
				return nil, errors.Wrap(err, "failed to create favorites")
			}
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to find favorites")
		}

		if favorite.Contains(productID) {
			if err := favoriteRepo.RemoveProduct(ctx, favorite.ID, productID); err != nil {
				return nil, errors.Wrap(err, "failed to remove favorite")
			}

			return usecase.Info(msgFavoriteRemoved, usecase.RedirectBack), nil
		}

		if err := favoriteRepo.AddProduct(ctx, favorite.ID, productID); err != nil {
			return nil, errors.Wrap(err, "failed to add favorite")
		}

		return usecase.Success(msgFavoriteAdded, usecase.RedirectBack), nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to toggle favorite", slog.Any("userID", userID), slog.Int64("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to toggle favorite")
	}

	return result, nil
}

// ListFavorites returns the user's favorite products; empty when the list was never created.
func (srv *favoriteService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	favorite, err := srv.favoriteRepo.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrFavoriteNotFound) {
		return []*entity.Product{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list favorites")
	}

	return favorite.Products, nil
}
