package handler

import (
	"context"
	"net/http"

	"storefront/internal/delivery/web/response"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type couponForm struct {
	Code string `form:"code" validate:"required,max=15"`
}

// CartHandler serves the cart mutations and the order summary.
type CartHandler struct {
	uc usecase.CartUsecase
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// AddToCart handles POST /add-to-cart/:id/.
func (h *CartHandler) AddToCart(c echo.Context) error {
	return h.mutateLine(c, h.uc.AddToCart)
}

// RemoveFromCart handles POST /remove-from-cart/:id/.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	return h.mutateLine(c, h.uc.RemoveFromCart)
}

// RemoveSingle handles POST /remove-single/:id/.
func (h *CartHandler) RemoveSingle(c echo.Context) error {
	return h.mutateLine(c, h.uc.DecrementLine)
}

func (h *CartHandler) mutateLine(c echo.Context, op func(context.Context, uuid.UUID, int64) (*usecase.Result, error)) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	productID, err := productIDParam(c)
	if err != nil {
		return err
	}

	result, err := op(c.Request().Context(), userID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, result)
}

// OrderSummary shows the current order.
func (h *CartHandler) OrderSummary(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	order, result, err := h.uc.OrderSummary(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}
	if result != nil {
		return response.Redirect(c, result)
	}

	return response.Render(c, http.StatusOK, "order_summary", "Your cart", order)
}

// ApplyCoupon handles the promo code form.
func (h *CartHandler) ApplyCoupon(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var form couponForm
	if err := c.Bind(&form); err != nil {
		return echo.ErrBadRequest
	}
	if err := c.Validate(&form); err != nil {
		return response.Redirect(c, usecase.Warning("Enter a promo code.", usecase.RouteCheckout))
	}

	result, err := h.uc.ApplyCoupon(c.Request().Context(), userID, form.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Redirect(c, result)
}
