package handler

import (
	"net/http"

	"storefront/internal/delivery/web/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// FavoriteHandler serves the wish list.
type FavoriteHandler struct {
	uc usecase.FavoriteUsecase
}

// NewFavoriteHandler is the constructor for FavoriteHandler, injected by Fx.
func NewFavoriteHandler(uc usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

// Toggle adds or removes a product.
func (h *FavoriteHandler) Toggle(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	result, err := h.uc.ToggleFavorite(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, result)
}

// List shows the user's favorites.
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	products, err := h.uc.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Render(c, http.StatusOK, "favorites", "Favorites", products)
}
