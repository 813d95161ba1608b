package handler

import (
	"net/http"

	"storefront/internal/delivery/web/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the product listing pages.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Index lists every product, newest first.
func (h *CatalogHandler) Index(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Render(c, http.StatusOK, "catalog", "Catalog", products)
}

// Categories lists categories with their sub-categories.
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Render(c, http.StatusOK, "categories", "Categories", categories)
}

// ProductDetail shows one product.
func (h *CatalogHandler) ProductDetail(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	detail, err := h.uc.ProductDetail(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Render(c, http.StatusOK, "product", detail.Product.Title, detail)
}
